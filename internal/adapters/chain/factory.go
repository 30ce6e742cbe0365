package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lmittmann/w3"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

const (
	// gasMarginPercent is added on top of estimated gas
	gasMarginPercent    = 20
	defaultPollInterval = 2 * time.Second
)

// Backend is the subset of ethclient.Client the factory needs
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// ArtifactSource resolves templates to compiled artifacts
type ArtifactSource interface {
	Get(template models.ResourceTemplate) (*artifacts.Artifact, error)
}

// Factory creates resources by sending signed EIP-1559 transactions from the
// deployer account and waiting for their receipts.
type Factory struct {
	backend      Backend
	artifacts    ArtifactSource
	key          *ecdsa.PrivateKey
	from         common.Address
	gasLimit     uint64
	pollInterval time.Duration
	log          *slog.Logger

	expectedChainID uint64
	chainOnce       sync.Once
	chainID         *big.Int
	chainErr        error
}

// NewFactory dials the configured network. The returned cleanup closes the connection.
func NewFactory(cfg *config.RuntimeConfig, store *artifacts.Store, log *slog.Logger) (*Factory, func(), error) {
	if cfg.DeployerKey == nil {
		return nil, nil, domain.ErrMissingDeployerKey
	}

	client, err := ethclient.Dial(cfg.Network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	f := NewFactoryWithBackend(client, store, cfg.DeployerKey, cfg.Network.ChainID, cfg.GasLimit, cfg.PollInterval, log)
	return f, client.Close, nil
}

// NewFactoryWithBackend creates a factory over an existing backend
func NewFactoryWithBackend(
	backend Backend,
	source ArtifactSource,
	key *ecdsa.PrivateKey,
	chainID uint64,
	gasLimit uint64,
	pollInterval time.Duration,
	log *slog.Logger,
) *Factory {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Factory{
		backend:         backend,
		artifacts:       source,
		key:             key,
		from:            crypto.PubkeyToAddress(key.PublicKey),
		gasLimit:        gasLimit,
		pollInterval:    pollInterval,
		expectedChainID: chainID,
		log:             log.With("component", "ChainFactory"),
	}
}

// Sender returns the deployer address
func (f *Factory) Sender() common.Address {
	return f.from
}

// Create deploys template with the given constructor arguments
func (f *Factory) Create(ctx context.Context, template models.ResourceTemplate, args ...any) (common.Address, error) {
	artifact, err := f.artifacts.Get(template)
	if err != nil {
		return common.Address{}, err
	}

	data, err := artifact.DeployData(args...)
	if err != nil {
		return common.Address{}, err
	}

	receipt, nonce, err := f.transact(ctx, nil, data)
	if err != nil {
		return common.Address{}, fmt.Errorf("create %s: %w", template.Name, err)
	}

	addr := receipt.ContractAddress
	if addr == (common.Address{}) {
		addr = crypto.CreateAddress(f.from, nonce)
	}
	return addr, nil
}

// Call sends a transaction invoking signature on target
func (f *Factory) Call(ctx context.Context, target common.Address, signature string, args ...any) error {
	input, err := EncodeCall(signature, args...)
	if err != nil {
		return err
	}

	if _, _, err := f.transact(ctx, &target, input); err != nil {
		return fmt.Errorf("call %s on %s: %w", signature, target.Hex(), err)
	}
	return nil
}

// EncodeCall ABI-encodes a method call from its signature, e.g. "setStrategy(address)"
func EncodeCall(signature string, args ...any) ([]byte, error) {
	fn, err := w3.NewFunc(signature, "")
	if err != nil {
		return nil, fmt.Errorf("invalid method signature %q: %w", signature, err)
	}
	input, err := fn.EncodeArgs(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s arguments: %w", signature, err)
	}
	return input, nil
}

func (f *Factory) ensureChainID(ctx context.Context) (*big.Int, error) {
	f.chainOnce.Do(func() {
		id, err := f.backend.ChainID(ctx)
		if err != nil {
			f.chainErr = fmt.Errorf("failed to get chain ID: %w", err)
			return
		}
		if f.expectedChainID != 0 && id.Uint64() != f.expectedChainID {
			f.chainErr = fmt.Errorf("chain ID mismatch: expected %d, got %d", f.expectedChainID, id.Uint64())
			return
		}
		f.chainID = id
	})
	return f.chainID, f.chainErr
}

// transact signs and sends a transaction, then blocks until it is mined
func (f *Factory) transact(ctx context.Context, to *common.Address, data []byte) (*types.Receipt, uint64, error) {
	chainID, err := f.ensureChainID(ctx)
	if err != nil {
		return nil, 0, err
	}

	nonce, err := f.backend.PendingNonceAt(ctx, f.from)
	if err != nil {
		return nil, 0, fmt.Errorf("get nonce: %w", err)
	}

	tipCap, err := f.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("suggest gas tip: %w", err)
	}

	head, err := f.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("get latest header: %w", err)
	}

	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas := f.gasLimit
	if gas == 0 {
		estimated, err := f.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:      f.from,
			To:        to,
			GasFeeCap: feeCap,
			GasTipCap: tipCap,
			Data:      data,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("estimate gas: %w", err)
		}
		gas = estimated + estimated*gasMarginPercent/100
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        to,
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), f.key)
	if err != nil {
		return nil, 0, fmt.Errorf("sign tx: %w", err)
	}

	if err := f.backend.SendTransaction(ctx, signed); err != nil {
		return nil, 0, fmt.Errorf("send tx: %w", err)
	}
	f.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "nonce", nonce, "gas", gas)

	receipt, err := f.waitForReceipt(ctx, signed.Hash())
	if err != nil {
		return nil, 0, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, signed.Hash().Hex())
	}
	return receipt, nonce, nil
}

func (f *Factory) waitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := f.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("get receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
