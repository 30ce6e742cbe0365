package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

const deploySteps = 5

// DeployFarming creates the farming topology: two tokens, the farming
// contract, a strategy, and the farming -> strategy binding.
type DeployFarming struct {
	factory  ResourceFactory
	clock    Clock
	config   *config.RuntimeConfig
	progress ProgressSink
	log      *slog.Logger
}

// NewDeployFarming creates a new deploy farming use case
func NewDeployFarming(
	factory ResourceFactory,
	clock Clock,
	cfg *config.RuntimeConfig,
	progress ProgressSink,
	log *slog.Logger,
) *DeployFarming {
	return &DeployFarming{
		factory:  factory,
		clock:    clock,
		config:   cfg,
		progress: progress,
		log:      log.With("component", "DeployFarming"),
	}
}

// Deploy creates a fresh set of resources. It is not idempotent. On failure
// no partial set is returned and the error names the step that failed.
func (d *DeployFarming) Deploy(ctx context.Context) (*models.DeploymentSet, error) {
	startTime, err := domain.AlignedStart(d.clock.Now(), d.config.Period)
	if err != nil {
		return nil, &domain.StepError{Step: "compute start time", Err: err}
	}
	d.log.Debug("aligned start time", "startTime", startTime, "period", d.config.Period)

	set := &models.DeploymentSet{StartTime: startTime}

	set.RewardToken, err = d.create(ctx, 1, models.RewardToken, domain.TokenTemplate,
		domain.RewardTokenDisplayName, domain.RewardTokenDisplayName)
	if err != nil {
		return nil, err
	}

	set.StakingToken, err = d.create(ctx, 2, models.StakingToken, domain.TokenTemplate,
		domain.StakingTokenDisplayName, domain.StakingTokenDisplayName)
	if err != nil {
		return nil, err
	}

	set.Farming, err = d.create(ctx, 3, models.Farming, domain.FarmingTemplate,
		set.RewardToken.Address, set.StakingToken.Address, new(big.Int).SetUint64(startTime))
	if err != nil {
		return nil, err
	}

	set.Strategy, err = d.create(ctx, 4, models.Strategy, domain.StrategyTemplate,
		set.StakingToken.Address, set.Farming.Address)
	if err != nil {
		return nil, err
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "configure",
		Current: 5,
		Total:   deploySteps,
		Message: "Binding strategy to farming",
		Spinner: true,
	})
	if err := d.factory.Call(ctx, set.Farming.Address, domain.SetStrategySignature, set.Strategy.Address); err != nil {
		d.progress.Error(fmt.Sprintf("Failed to set strategy on %s", set.Farming.Address.Hex()))
		return nil, &domain.StepError{Step: "configure farming strategy", Err: err}
	}
	d.log.Info("farming configured", "farming", set.Farming.Address.Hex(), "strategy", set.Strategy.Address.Hex())
	d.progress.Info("Strategy bound to farming")

	return set, nil
}

func (d *DeployFarming) create(
	ctx context.Context,
	step int,
	name models.LogicalName,
	template models.ResourceTemplate,
	args ...any,
) (*models.DeployedResource, error) {
	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploy",
		Current: step,
		Total:   deploySteps,
		Message: fmt.Sprintf("Deploying %s (%s)", name, template.Name),
		Spinner: true,
	})

	addr, err := d.factory.Create(ctx, template, args...)
	if err != nil {
		d.progress.Error(fmt.Sprintf("Failed to deploy %s", name))
		return nil, &domain.StepError{Step: fmt.Sprintf("deploy %s", name), Err: err}
	}

	d.log.Info("deployed", "resource", name, "template", template.Name, "address", addr.Hex())
	d.progress.Info(fmt.Sprintf("Deployed %s at %s", name, addr.Hex()))

	return &models.DeployedResource{
		Name:            name,
		Template:        template,
		Address:         addr,
		ConstructorArgs: args,
	}, nil
}
