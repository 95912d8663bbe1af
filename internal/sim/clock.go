package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// DefaultInterval is one display frame at 60 Hz.
const DefaultInterval = time.Second / 60

// RunClock ticks d with measured wall-clock deltas every interval until ctx
// is done or a tick fails. Late ticks are not replayed.
func RunClock(ctx context.Context, d *Driver, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", dynamo.ErrInvalidArgument, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				continue
			}
			if err := d.Tick(dt); err != nil {
				return err
			}
		}
	}
}
