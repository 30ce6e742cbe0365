package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

var errFactory = errors.New("rpc unavailable")

type factoryCall struct {
	kind      string // "create" or "call"
	template  string
	target    common.Address
	signature string
	args      []any
}

// recordingFactory hands out addresses in order and records every request
type recordingFactory struct {
	addresses []common.Address
	next      int
	failOn    string
	calls     []factoryCall
}

func (f *recordingFactory) Create(ctx context.Context, template models.ResourceTemplate, args ...any) (common.Address, error) {
	f.calls = append(f.calls, factoryCall{kind: "create", template: template.Name, args: args})
	if f.failOn == template.Name {
		return common.Address{}, errFactory
	}
	var addr common.Address
	if f.next < len(f.addresses) {
		addr = f.addresses[f.next]
	} else {
		addr = common.BigToAddress(big.NewInt(int64(0x1000 + f.next)))
	}
	f.next++
	return addr, nil
}

func (f *recordingFactory) Call(ctx context.Context, target common.Address, signature string, args ...any) error {
	f.calls = append(f.calls, factoryCall{kind: "call", target: target, signature: signature, args: args})
	if f.failOn == signature {
		return errFactory
	}
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type countingCooldown struct {
	waits int
}

func (c *countingCooldown) Wait(context.Context) { c.waits++ }

type panickingCooldown struct{}

func (panickingCooldown) Wait(context.Context) { panic("cooldown exploded") }

// mockVerifier is a testify mock for SourceVerifier
type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, resource *models.DeployedResource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

// memoryLedger keeps one record per network
type memoryLedger struct {
	mu      sync.Mutex
	records map[string]models.AddressRecord
	saves   int
	err     error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]models.AddressRecord)}
}

func (l *memoryLedger) Save(ctx context.Context, network string, set *models.DeploymentSet) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return "", l.err
	}
	l.saves++
	l.records[network] = set.AddressRecord()
	return "addresses/" + network + "Addresses.json", nil
}

func (l *memoryLedger) Load(ctx context.Context, network string) (*models.AddressRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.records[network]
	if !ok {
		return nil, errors.New("no record")
	}
	return &record, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(network string, period time.Duration) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{Name: network},
		Period:  period,
	}
}

func literalAddresses() []common.Address {
	return []common.Address{
		common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"),
		common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"),
		common.HexToAddress("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"),
		common.HexToAddress("0xDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDD"),
	}
}
