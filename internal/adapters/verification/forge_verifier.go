package verification

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// CommandRunner runs forge with args in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ArtifactSource resolves templates to compiled artifacts
type ArtifactSource interface {
	Get(template models.ResourceTemplate) (*artifacts.Artifact, error)
}

// ForgeVerifier submits sources through `forge verify-contract`
type ForgeVerifier struct {
	projectRoot string
	network     *config.Network
	artifacts   ArtifactSource
	run         CommandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a verifier for the configured network
func NewForgeVerifier(cfg *config.RuntimeConfig, store *artifacts.Store, log *slog.Logger) *ForgeVerifier {
	return NewForgeVerifierWithRunner(cfg.ProjectRoot, cfg.Network, store, execForge, log)
}

// NewForgeVerifierWithRunner creates a verifier with a custom command runner
func NewForgeVerifierWithRunner(
	projectRoot string,
	network *config.Network,
	source ArtifactSource,
	run CommandRunner,
	log *slog.Logger,
) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: projectRoot,
		network:     network,
		artifacts:   source,
		run:         run,
		log:         log.With("component", "ForgeVerifier"),
	}
}

// Verify submits one resource. An explorer that already holds the source
// yields an error wrapping domain.ErrAlreadyVerified.
func (v *ForgeVerifier) Verify(ctx context.Context, resource *models.DeployedResource) error {
	args, err := v.BuildArgs(resource)
	if err != nil {
		return err
	}

	v.log.Debug("running forge", "args", strings.Join(args, " "))
	output, runErr := v.run(ctx, v.projectRoot, args...)
	return classifyOutput(string(output), runErr)
}

// BuildArgs returns the forge verify-contract arguments for a resource
func (v *ForgeVerifier) BuildArgs(resource *models.DeployedResource) ([]string, error) {
	artifact, err := v.artifacts.Get(resource.Template)
	if err != nil {
		return nil, err
	}

	encoded, err := artifact.EncodeConstructor(resource.ConstructorArgs...)
	if err != nil {
		return nil, err
	}

	source := artifact.SourcePath
	if source == "" {
		source = fmt.Sprintf("src/%s.sol", artifact.Name)
	}

	args := []string{
		"verify-contract",
		resource.Address.Hex(),
		fmt.Sprintf("%s:%s", source, artifact.Name),
	}

	if v.network.ChainID != 0 {
		args = append(args, "--chain-id", fmt.Sprintf("%d", v.network.ChainID))
	} else if v.network.RPCURL != "" {
		args = append(args, "--rpc-url", v.network.RPCURL)
	}

	if len(encoded) > 0 {
		args = append(args, "--constructor-args", strings.TrimPrefix(hexutil.Encode(encoded), "0x"))
	}

	args = append(args, "--watch")

	if v.network.ExplorerKey != "" {
		args = append(args, "--etherscan-api-key", v.network.ExplorerKey)
	}
	if v.network.ExplorerURL != "" {
		args = append(args, "--verifier-url", v.network.ExplorerURL)
	}

	return args, nil
}

// classifyOutput maps forge output and exit status to a verification result
func classifyOutput(output string, runErr error) error {
	trimmed := strings.TrimSpace(output)
	lower := strings.ToLower(trimmed)

	if strings.Contains(lower, "already verified") {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyVerified, lastLine(trimmed))
	}

	if runErr != nil {
		if trimmed == "" {
			return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, runErr)
		}
		return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, trimmed)
	}

	if strings.Contains(lower, "successfully verified") || strings.Contains(lower, "pass - verified") {
		return nil
	}

	return fmt.Errorf("%w: status unclear: %s", domain.ErrVerificationFailed, trimmed)
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func execForge(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
