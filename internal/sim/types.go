package sim

import (
	"github.com/google/uuid"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Phase is the driver lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Snapshot is what a Driver publishes. State is a read-only view: its
// History shares the driver's buffer and must not be written.
type Snapshot struct {
	// Seq increases with every publication of the driver.
	Seq    uint64
	RunID  uuid.UUID
	Phase  Phase
	Speed  float64
	Params dynamo.Params
	State  dynamo.State
}

// Latest returns the most recent history sample, if any.
func (s Snapshot) Latest() (dynamo.Sample, bool) {
	h := s.State.History
	if len(h) == 0 {
		return dynamo.Sample{}, false
	}
	return h[len(h)-1], true
}
