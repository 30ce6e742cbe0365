package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
)

// unsetRef matches an endpoint that is nothing but a ${VAR} reference
var unsetRef = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// envReference returns the variable name when raw is a bare ${VAR} reference
func envReference(raw string) (string, bool) {
	m := unsetRef.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// rpcEnvVar is the fallback variable for a network's endpoint:
// sepolia -> SEPOLIA_RPC_URL, celo-sepolia -> CELO_SEPOLIA_RPC_URL
func rpcEnvVar(network string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(network)) + "_RPC_URL"
}

// localNetworks resolve to a local node when nothing else is configured
var localNetworks = map[string]string{
	"localhost": "http://127.0.0.1:8545",
	"anvil":     "http://127.0.0.1:8545",
	"hardhat":   "http://127.0.0.1:8545",
}

// NetworkResolver resolves network names to endpoint configuration
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{foundryConfig: foundryConfig}
}

// Resolve resolves a network name. rpcOverride, when set, replaces any
// configured endpoint. Lookup order: override, foundry.toml [rpc_endpoints],
// <NAME>_RPC_URL, built-in local endpoints.
func (r *NetworkResolver) Resolve(networkName, rpcOverride string) (*config.Network, error) {
	if err := domain.ValidateNetworkName(networkName); err != nil {
		return nil, err
	}

	network := &config.Network{Name: networkName}

	if etherscan, ok := r.foundryConfig.Etherscan[networkName]; ok {
		network.ExplorerURL = etherscan.URL
		network.ExplorerKey = etherscan.Key
	}
	if network.ExplorerKey == "" {
		network.ExplorerKey = os.Getenv("ETHERSCAN_API_KEY")
	}

	if rpcOverride != "" {
		network.RPCURL = rpcOverride
		return network, nil
	}

	if raw, ok := r.foundryConfig.RpcEndpoints[networkName]; ok {
		if envVar, isVar := envReference(raw); isVar {
			return nil, fmt.Errorf("%w: %s rpc endpoint references unset %s", domain.ErrNetworkNotConfigured, networkName, envVar)
		}
		network.RPCURL = raw
		return network, nil
	}

	if url := os.Getenv(rpcEnvVar(networkName)); url != "" {
		network.RPCURL = url
		return network, nil
	}

	if url, ok := localNetworks[networkName]; ok {
		network.RPCURL = url
		return network, nil
	}

	return nil, fmt.Errorf("%w: '%s' not found in foundry.toml [rpc_endpoints] and %s is unset",
		domain.ErrNetworkNotConfigured, networkName, rpcEnvVar(networkName))
}
