package models

// VerificationStatus represents the outcome of one verification attempt
type VerificationStatus string

const (
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusSkipped  VerificationStatus = "skipped"
	VerificationStatusFailed   VerificationStatus = "failed"
)

// VerificationOutcome is the per-resource result of the verification phase
type VerificationOutcome struct {
	Resource *DeployedResource
	Status   VerificationStatus
	Reason   string
}

// Verified reports whether the explorer now holds the source
func (o VerificationOutcome) Verified() bool {
	return o.Status == VerificationStatusVerified
}
