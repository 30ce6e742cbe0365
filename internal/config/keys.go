package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service deployer keys are stored under.
// The keyring user is the network name.
const KeyringService = "farm-deploy"

// resolveDeployerKey parses the configured private key, falling back to the
// OS keyring entry for the network.
func resolveDeployerKey(configured, networkName string) (*ecdsa.PrivateKey, error) {
	source := "private_key"
	hexKey := strings.TrimSpace(configured)

	if hexKey == "" {
		secret, err := keyring.Get(KeyringService, networkName)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("%w: set FARM_PRIVATE_KEY or store a key with service %q and user %q in the OS keyring",
					domain.ErrMissingDeployerKey, KeyringService, networkName)
			}
			return nil, fmt.Errorf("%w: keyring lookup failed: %v", domain.ErrMissingDeployerKey, err)
		}
		source = "keyring"
		hexKey = strings.TrimSpace(secret)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse deployer key from %s: %w", source, err)
	}
	return key, nil
}
