package addresses

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// FileSuffix is appended to the network name to form the record filename
const FileSuffix = "Addresses.json"

// FileLedger writes one address record per network as JSON. Each save
// replaces the previous record wholesale.
type FileLedger struct {
	dir string
	mu  sync.Mutex
}

// NewFileLedger creates a ledger in the configured addresses directory
func NewFileLedger(cfg *config.RuntimeConfig) *FileLedger {
	return NewFileLedgerAt(cfg.AddressesDir)
}

// NewFileLedgerAt creates a ledger rooted at dir
func NewFileLedgerAt(dir string) *FileLedger {
	return &FileLedger{dir: dir}
}

// PathFor returns the record path for a network
func (l *FileLedger) PathFor(network string) string {
	return filepath.Join(l.dir, network+FileSuffix)
}

// Save writes the set's address record for network and returns the file path
func (l *FileLedger) Save(ctx context.Context, network string, set *models.DeploymentSet) (string, error) {
	if err := domain.ValidateNetworkName(network); err != nil {
		return "", err
	}
	if set == nil || set.RewardToken == nil || set.StakingToken == nil || set.Farming == nil || set.Strategy == nil {
		return "", fmt.Errorf("incomplete deployment set")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create addresses directory: %w", err)
	}

	path := l.PathFor(network)
	if err := saveFile(path, set.AddressRecord()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Load reads the address record for network
func (l *FileLedger) Load(ctx context.Context, network string) (*models.AddressRecord, error) {
	if err := domain.ValidateNetworkName(network); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.PathFor(network))
	if err != nil {
		return nil, err
	}

	var record models.AddressRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse address record: %w", err)
	}
	return &record, nil
}

// saveFile writes to a temp file and renames it over path
func saveFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
