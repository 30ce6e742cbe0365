package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidPeriod is returned when the alignment period is not a positive whole number of seconds
	ErrInvalidPeriod = errors.New("invalid alignment period")

	// ErrNetworkNotConfigured is returned when no RPC endpoint can be found for the selected network
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrInvalidNetwork is returned when a network name cannot scope a ledger record
	ErrInvalidNetwork = errors.New("invalid network name")

	// ErrMissingDeployerKey is returned when no deployer private key could be resolved
	ErrMissingDeployerKey = errors.New("missing deployer key")

	// ErrArtifactNotFound is returned when a compiled artifact for a template cannot be located
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrAlreadyVerified is returned by verifiers when the explorer already has the source
	ErrAlreadyVerified = errors.New("already verified")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")
)

// StepError records which orchestration step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
