package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/farm-deploy/internal/domain"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// VerifyResources submits each deployed resource for source verification.
// A failed attempt never stops the others.
type VerifyResources struct {
	verifier SourceVerifier
	cooldown Cooldown
	progress ProgressSink
	log      *slog.Logger
}

// NewVerifyResources creates a new verify resources use case
func NewVerifyResources(
	verifier SourceVerifier,
	cooldown Cooldown,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyResources {
	return &VerifyResources{
		verifier: verifier,
		cooldown: cooldown,
		progress: progress,
		log:      log.With("component", "VerifyResources"),
	}
}

// VerifyAll attempts every resource once, in creation order, waiting for the
// cooldown after each attempt including the last. It returns one outcome per
// resource.
func (v *VerifyResources) VerifyAll(ctx context.Context, set *models.DeploymentSet) []models.VerificationOutcome {
	resources := set.Resources()
	outcomes := make([]models.VerificationOutcome, 0, len(resources))

	for i, resource := range resources {
		v.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "verify",
			Current: i + 1,
			Total:   len(resources),
			Message: fmt.Sprintf("Verifying %s at %s", resource.Name, resource.Address.Hex()),
			Spinner: true,
		})

		outcome := v.attempt(ctx, resource)
		outcomes = append(outcomes, outcome)

		switch outcome.Status {
		case models.VerificationStatusVerified:
			v.log.Info("verified successfully", "resource", resource.Name, "address", resource.Address.Hex())
			v.progress.Info(fmt.Sprintf("Verified %s", resource.Name))
		case models.VerificationStatusSkipped:
			v.log.Info("already verified", "resource", resource.Name, "address", resource.Address.Hex())
			v.progress.Info(fmt.Sprintf("%s already verified", resource.Name))
		default:
			v.log.Error("cannot verify contract", "resource", resource.Name, "address", resource.Address.Hex(), "error", outcome.Reason)
			v.progress.Error(fmt.Sprintf("Cannot verify %s at %s", resource.Name, resource.Address.Hex()))
		}

		v.cooldown.Wait(ctx)
	}

	return outcomes
}

func (v *VerifyResources) attempt(ctx context.Context, resource *models.DeployedResource) (outcome models.VerificationOutcome) {
	outcome.Resource = resource

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = models.VerificationStatusFailed
			outcome.Reason = fmt.Sprintf("panic during verification: %v", r)
		}
	}()

	err := v.verifier.Verify(ctx, resource)
	switch {
	case err == nil:
		outcome.Status = models.VerificationStatusVerified
	case errors.Is(err, domain.ErrAlreadyVerified):
		outcome.Status = models.VerificationStatusSkipped
		outcome.Reason = err.Error()
	default:
		outcome.Status = models.VerificationStatusFailed
		outcome.Reason = err.Error()
	}
	return outcome
}
