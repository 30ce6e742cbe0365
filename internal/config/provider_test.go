package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/zalando/go-keyring"
)

// Well-known anvil account #0
const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func writeFoundryToml(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(content), 0644))
}

func TestProvider(t *testing.T) {
	t.Run("defaults with local network", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, "addresses"), cfg.AddressesDir)
		assert.Equal(t, filepath.Join(dir, "out"), cfg.ArtifactsDir)
		assert.Equal(t, 7*time.Minute, cfg.Period)
		assert.Equal(t, 16*time.Second, cfg.VerifyCooldown)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.Equal(t, "http://127.0.0.1:8545", cfg.Network.RPCURL)
		require.NotNil(t, cfg.DeployerKey)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(cfg.DeployerKey.PublicKey).Hex())
	})

	t.Run("network from foundry.toml with env expansion", func(t *testing.T) {
		dir := t.TempDir()
		writeFoundryToml(t, dir, `
[rpc_endpoints]
sepolia = "${TEST_SEPOLIA_URL}"

[etherscan]
sepolia = { key = "${TEST_SCAN_KEY}", url = "https://api-sepolia.etherscan.io/api" }
`)
		t.Setenv("TEST_SEPOLIA_URL", "https://rpc.sepolia.example")
		t.Setenv("TEST_SCAN_KEY", "scan-key")
		t.Setenv("FARM_NETWORK", "sepolia")
		t.Setenv("FARM_CHAIN_ID", "11155111")
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)

		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Equal(t, "https://rpc.sepolia.example", cfg.Network.RPCURL)
		assert.Equal(t, "https://api-sepolia.etherscan.io/api", cfg.Network.ExplorerURL)
		assert.Equal(t, "scan-key", cfg.Network.ExplorerKey)
		assert.Equal(t, uint64(11155111), cfg.Network.ChainID)
	})

	t.Run("period override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)
		t.Setenv("FARM_PERIOD", "720h")
		t.Setenv("FARM_VERIFY_COOLDOWN", "0s")

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)
		assert.Equal(t, 720*time.Hour, cfg.Period)
		assert.Zero(t, cfg.VerifyCooldown)
	})

	t.Run("sub-second period is a configuration error", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)
		t.Setenv("FARM_PERIOD", "0s")

		_, err := Provider(SetupViper(dir, nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})

	t.Run("unknown network", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)
		t.Setenv("FARM_NETWORK", "nowhere")

		_, err := Provider(SetupViper(dir, nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})

	t.Run("dotenv supplies the key", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FARM_DOTENV_URL=http://10.0.0.1:8545\n"), 0644))
		writeFoundryToml(t, dir, `
[rpc_endpoints]
staging = "${FARM_DOTENV_URL}"
`)
		t.Setenv("FARM_NETWORK", "staging")
		t.Setenv("FARM_PRIVATE_KEY", testPrivateKey)
		t.Cleanup(func() { os.Unsetenv("FARM_DOTENV_URL") })

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.1:8545", cfg.Network.RPCURL)
	})
}

func TestResolveDeployerKey(t *testing.T) {
	keyring.MockInit()

	t.Run("configured key wins", func(t *testing.T) {
		key, err := resolveDeployerKey(testPrivateKey, "localhost")
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(key.PublicKey).Hex())
	})

	t.Run("falls back to keyring", func(t *testing.T) {
		require.NoError(t, keyring.Set(KeyringService, "sepolia", testPrivateKey[2:]))

		key, err := resolveDeployerKey("", "sepolia")
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(key.PublicKey).Hex())
	})

	t.Run("missing everywhere", func(t *testing.T) {
		_, err := resolveDeployerKey("", "mainnet")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingDeployerKey)
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := resolveDeployerKey("0x1234", "localhost")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrMissingDeployerKey)
	})
}
