package task

import (
	"context"
	"fmt"
	"time"

	"github.com/AvengeMedia/danklauncher/internal/errdefs"
	"github.com/jonboulle/clockwork"
)

// Cadence describes how a simulated task advances: Step percent every
// Interval.
type Cadence struct {
	Step     int
	Interval time.Duration
}

var (
	DefaultInstallCadence  = Cadence{Step: 5, Interval: 100 * time.Millisecond}
	DefaultDownloadCadence = Cadence{Step: 10, Interval: 100 * time.Millisecond}
)

func (c Cadence) Validate() error {
	if c.Step < 1 || c.Step > 100 {
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "invalid cadence",
			fmt.Errorf("step must be within 1..100, got %d", c.Step))
	}
	if c.Interval < 0 {
		return errdefs.Wrap(errdefs.ErrTypeInvalidConfig, "invalid cadence",
			fmt.Errorf("interval must not be negative, got %s", c.Interval))
	}
	return nil
}

// Steps is the number of ticks needed to reach 100%.
func (c Cadence) Steps() int {
	return (100 + c.Step - 1) / c.Step
}

func (c Cadence) Duration() time.Duration {
	return time.Duration(c.Steps()) * c.Interval
}

// Simulate returns a Job that reports Step, 2*Step, ... and finally exactly
// 100, waiting Interval on clock before each report.
func Simulate(clock clockwork.Clock, c Cadence) Job {
	return func(ctx context.Context, report func(int)) error {
		for percent := c.Step; ; percent += c.Step {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock.After(c.Interval):
			}

			if percent >= 100 {
				report(100)
				return nil
			}
			report(percent)
		}
	}
}
