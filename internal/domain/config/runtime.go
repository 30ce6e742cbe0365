package config

import (
	"crypto/ecdsa"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	AddressesDir string
	ArtifactsDir string

	// Network the run is scoped to
	Network *Network

	// Deployer signs every creation and configuration transaction
	DeployerKey *ecdsa.PrivateKey

	// Orchestration settings
	Period         time.Duration // alignment period for the farming start
	VerifyCooldown time.Duration // pause after every verification attempt
	PollInterval   time.Duration // receipt polling interval
	GasLimit       uint64        // 0 means estimate

	// Execution settings
	Debug          bool
	NonInteractive bool
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ChainID     uint64 `json:"chainId,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	ExplorerKey string `json:"-"`
}
