package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

// Step advances s by dt with the dynamics of p.Motion and appends one
// history sample stamped with the pre-step time. A completed state is
// returned unchanged. On error the returned state is s.
//
// Step appends into s.History in place; s must not be used after a
// successful call.
func Step(s dynamo.State, p dynamo.Params, dt float64) (dynamo.State, error) {
	if s.Completed {
		return s, nil
	}

	fail := func(err error) (dynamo.State, error) {
		return s, &dynamo.StepError{Step: len(s.History), Time: s.Time, Motion: p.Motion, Err: err}
	}

	if !(dt > 0) || math.IsInf(dt, 1) {
		return fail(fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidArgument, dt))
	}

	m, err := physics.For(p.Motion)
	if err != nil {
		return fail(err)
	}
	if err := m.Validate(p); err != nil {
		return fail(err)
	}

	next := m.Advance(s, p, dt)
	if !next.IsValid() {
		return fail(dynamo.ErrInvalidState)
	}

	next.History = append(s.History, next.Sample(s.Time))
	next.Time = s.Time + dt
	return next, nil
}

// Run steps s until it completes or n steps were taken.
func Run(s dynamo.State, p dynamo.Params, dt float64, n int) (dynamo.State, error) {
	var err error
	for i := 0; i < n && !s.Completed; i++ {
		if s, err = Step(s, p, dt); err != nil {
			return s, err
		}
	}
	return s, nil
}
