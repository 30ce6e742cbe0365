package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		AddressesDir:   resolvePath(projectRoot, v.GetString("addresses_dir")),
		ArtifactsDir:   resolvePath(projectRoot, v.GetString("artifacts_dir")),
		Period:         v.GetDuration("period"),
		VerifyCooldown: v.GetDuration("verify_cooldown"),
		PollInterval:   v.GetDuration("poll_interval"),
		GasLimit:       v.GetUint64("gas_limit"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
	}

	if cfg.Period < time.Second {
		return nil, fmt.Errorf("%w: period must be at least one second, got %s", domain.ErrInvalidPeriod, cfg.Period)
	}
	if cfg.VerifyCooldown < 0 {
		return nil, fmt.Errorf("verify_cooldown must not be negative, got %s", cfg.VerifyCooldown)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll_interval must be positive, got %s", cfg.PollInterval)
	}

	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	networkName := v.GetString("network")
	network, err := NewNetworkResolver(foundryConfig).Resolve(networkName, v.GetString("rpc_url"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	network.ChainID = v.GetUint64("chain_id")
	cfg.Network = network

	key, err := resolveDeployerKey(v.GetString("private_key"), network.Name)
	if err != nil {
		return nil, err
	}
	cfg.DeployerKey = key

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml,
// falling back to the working directory.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".farm"))

	// Set up environment variables
	v.SetEnvPrefix("FARM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("network", "localhost")
	v.SetDefault("rpc_url", "")
	v.SetDefault("chain_id", 0)
	v.SetDefault("private_key", "")
	v.SetDefault("period", "7m")
	v.SetDefault("verify_cooldown", "16s")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("gas_limit", 0)
	v.SetDefault("addresses_dir", "addresses")
	v.SetDefault("artifacts_dir", "out")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
					panic(err)
				}
			}
		})
	}

	return v
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
