package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
)

// ResourceFactory creates resources from templates and calls methods on them.
// Both operations block until the transaction is confirmed.
type ResourceFactory interface {
	Create(ctx context.Context, template models.ResourceTemplate, args ...any) (common.Address, error)
	Call(ctx context.Context, target common.Address, signature string, args ...any) error
}

// SourceVerifier registers a resource's source with a block explorer
type SourceVerifier interface {
	Verify(ctx context.Context, resource *models.DeployedResource) error
}

// AddressLedger persists the address record of a deployment set, one record per network
type AddressLedger interface {
	Save(ctx context.Context, network string, set *models.DeploymentSet) (string, error)
	Load(ctx context.Context, network string) (*models.AddressRecord, error)
}

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Cooldown pauses between verification attempts
type Cooldown interface {
	Wait(ctx context.Context)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
