package timing

import (
	"context"
	"time"

	"github.com/trebuchet-org/farm-deploy/internal/domain/config"
)

// SystemClock reads the wall clock
type SystemClock struct{}

// NewSystemClock creates a wall clock
func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ConstantCooldown waits a fixed interval. A cancelled context ends the wait early.
type ConstantCooldown struct {
	interval time.Duration
}

// NewConstantCooldown creates a cooldown from the configured verification interval
func NewConstantCooldown(cfg *config.RuntimeConfig) *ConstantCooldown {
	return &ConstantCooldown{interval: cfg.VerifyCooldown}
}

// NewConstantCooldownOf creates a cooldown of the given interval
func NewConstantCooldownOf(interval time.Duration) *ConstantCooldown {
	return &ConstantCooldown{interval: interval}
}

func (c *ConstantCooldown) Wait(ctx context.Context) {
	if c.interval <= 0 {
		return
	}
	timer := time.NewTimer(c.interval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
