package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// BootstrapStage names the phase a run reached
type BootstrapStage string

const (
	StageDeploy  BootstrapStage = "deploy"
	StagePersist BootstrapStage = "persist"
	StageVerify  BootstrapStage = "verify"
	StageDone    BootstrapStage = "done"
)

// BootstrapResult is the terminal outcome of a run
type BootstrapResult struct {
	Network    string
	Set        *models.DeploymentSet
	RecordPath string
	Outcomes   []models.VerificationOutcome
	Stage      BootstrapStage
	Err        error
}

// Success reports whether deployment and persistence completed
func (r *BootstrapResult) Success() bool {
	return r.Err == nil
}

// Bootstrap runs deploy, persist and verify in sequence
type Bootstrap struct {
	deploy   *DeployFarming
	ledger   AddressLedger
	verify   *VerifyResources
	config   *config.RuntimeConfig
	progress ProgressSink
	log      *slog.Logger
}

// NewBootstrap creates a new bootstrap use case
func NewBootstrap(
	deploy *DeployFarming,
	ledger AddressLedger,
	verify *VerifyResources,
	cfg *config.RuntimeConfig,
	progress ProgressSink,
	log *slog.Logger,
) *Bootstrap {
	return &Bootstrap{
		deploy:   deploy,
		ledger:   ledger,
		verify:   verify,
		config:   cfg,
		progress: progress,
		log:      log.With("component", "Bootstrap"),
	}
}

// Run executes one bootstrap. Deployment and persistence failures end the
// run; verification failures are reported per resource. The returned result
// is always non-nil.
func (b *Bootstrap) Run(ctx context.Context) *BootstrapResult {
	result := &BootstrapResult{
		Network: b.config.Network.Name,
		Stage:   StageDeploy,
	}

	set, err := b.deploy.Deploy(ctx)
	if err != nil {
		result.Err = fmt.Errorf("deployment failed: %w", err)
		return result
	}
	result.Set = set

	result.Stage = StagePersist
	path, err := b.ledger.Save(ctx, result.Network, set)
	if err != nil {
		result.Err = fmt.Errorf("failed to save addresses: %w", err)
		return result
	}
	result.RecordPath = path
	b.log.Info("Addresses saved!", "network", result.Network, "path", path)
	b.progress.Info(fmt.Sprintf("Addresses saved to %s", path))

	result.Stage = StageVerify
	result.Outcomes = b.verifyAll(ctx, set)

	result.Stage = StageDone
	return result
}

func (b *Bootstrap) verifyAll(ctx context.Context, set *models.DeploymentSet) (outcomes []models.VerificationOutcome) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("verification phase aborted", "panic", r)
		}
	}()
	return b.verify.VerifyAll(ctx, set)
}
