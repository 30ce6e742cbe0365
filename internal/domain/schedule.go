package domain

import (
	"fmt"
	"time"
)

// AlignedStart returns the first unix timestamp strictly after now that is an
// exact multiple of period. A now that already sits on a boundary yields the
// next boundary, never itself.
func AlignedStart(now time.Time, period time.Duration) (uint64, error) {
	p := int64(period / time.Second)
	if p <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	t := now.Unix()
	if t < 0 {
		return 0, fmt.Errorf("%w: current time %d precedes the epoch", ErrInvalidPeriod, t)
	}

	return uint64((t/p + 1) * p), nil
}
