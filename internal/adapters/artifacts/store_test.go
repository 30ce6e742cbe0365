package artifacts

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

const foundryTokenArtifact = `{
  "abi": [
    {"type": "constructor", "inputs": [
      {"name": "name", "type": "string", "internalType": "string"},
      {"name": "symbol", "type": "string", "internalType": "string"}
    ], "stateMutability": "nonpayable"}
  ],
  "bytecode": {"object": "0x6080604052", "sourceMap": "", "linkReferences": {}},
  "metadata": {"settings": {"compilationTarget": {"src/FakeERC20.sol": "FakeERC20"}}}
}`

const hardhatFarmingArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "NewFarming",
  "sourceName": "contracts/NewFarming.sol",
  "abi": [
    {"type": "constructor", "inputs": [
      {"name": "rewardToken", "type": "address"},
      {"name": "stakingToken", "type": "address"},
      {"name": "startTime", "type": "uint256"}
    ], "stateMutability": "nonpayable"},
    {"type": "function", "name": "setStrategy", "inputs": [{"name": "strategy", "type": "address"}], "outputs": [], "stateMutability": "nonpayable"}
  ],
  "bytecode": "0x60806040"
}`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStore_Get(t *testing.T) {
	t.Run("foundry layout", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "FakeERC20.sol/FakeERC20.json", foundryTokenArtifact)

		store := NewStoreAt(root)
		a, err := store.Get(models.ResourceTemplate{Name: "FakeERC20"})
		require.NoError(t, err)

		assert.Equal(t, "FakeERC20", a.Name)
		assert.Equal(t, "src/FakeERC20.sol", a.SourcePath)

		code, err := a.Bytecode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, code)

		parsed, err := a.ABI()
		require.NoError(t, err)
		assert.Len(t, parsed.Constructor.Inputs, 2)
	})

	t.Run("hardhat layout", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "contracts/NewFarming.sol/NewFarming.json", hardhatFarmingArtifact)
		writeArtifact(t, root, "contracts/NewFarming.sol/NewFarming.dbg.json", `{"buildInfo": "x"}`)

		a, err := NewStoreAt(root).Get(models.ResourceTemplate{Name: "NewFarming"})
		require.NoError(t, err)
		assert.Equal(t, "contracts/NewFarming.sol", a.SourcePath)

		code, err := a.Bytecode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, code)
	})

	t.Run("prefers the directory named after the contract", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "Aaa.sol/FakeERC20.json", hardhatFarmingArtifact)
		writeArtifact(t, root, "FakeERC20.sol/FakeERC20.json", foundryTokenArtifact)

		a, err := NewStoreAt(root).Get(models.ResourceTemplate{Name: "FakeERC20"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "FakeERC20.sol", "FakeERC20.json"), a.Path)
	})

	t.Run("caches loaded artifacts", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "FakeERC20.sol/FakeERC20.json", foundryTokenArtifact)
		store := NewStoreAt(root)

		first, err := store.Get(models.ResourceTemplate{Name: "FakeERC20"})
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(filepath.Join(root, "FakeERC20.sol")))

		second, err := store.Get(models.ResourceTemplate{Name: "FakeERC20"})
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("missing artifact", func(t *testing.T) {
		_, err := NewStoreAt(t.TempDir()).Get(models.ResourceTemplate{Name: "StrategyMock"})
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("missing output directory", func(t *testing.T) {
		_, err := NewStoreAt(filepath.Join(t.TempDir(), "out")).Get(models.ResourceTemplate{Name: "StrategyMock"})
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})
}

func TestArtifact_DeployData(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "contracts/NewFarming.sol/NewFarming.json", hardhatFarmingArtifact)
	a, err := NewStoreAt(root).Get(models.ResourceTemplate{Name: "NewFarming"})
	require.NoError(t, err)

	reward := common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	staking := common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")

	t.Run("appends encoded constructor arguments", func(t *testing.T) {
		data, err := a.DeployData(reward, staking, big.NewInt(1260))
		require.NoError(t, err)
		require.Len(t, data, 4+3*32)

		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, data[:4])
		assert.Equal(t, reward.Bytes(), data[4+12:4+32])
		assert.Equal(t, staking.Bytes(), data[4+32+12:4+64])
		assert.Equal(t, int64(1260), new(big.Int).SetBytes(data[4+64:]).Int64())
	})

	t.Run("rejects mismatched arguments", func(t *testing.T) {
		_, err := a.DeployData(reward)
		assert.Error(t, err)
	})
}

func TestParseBytecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"hardhat string", `"0x6080"`, "0x6080", false},
		{"unprefixed string", `"6080"`, "0x6080", false},
		{"foundry object", `{"object":"0x6080"}`, "0x6080", false},
		{"empty", ``, "", true},
		{"number", `42`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBytecode([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtifact_Bytecode_Unlinked(t *testing.T) {
	a := &Artifact{Name: "Lib"}
	a.Meta = newMeta(`[]`, "0x60__$abcdef$__00")
	_, err := a.Bytecode()
	assert.Error(t, err)
}
