package dynamo

import (
	"math"
	"slices"
)

// Sample is one point of the trajectory. T is the time at the start of the
// step that produced the kinematic values.
type Sample struct {
	T  float64 `json:"t"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

func (s Sample) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

func (s Sample) Acceleration() float64 {
	return math.Hypot(s.AX, s.AY)
}

// State is the kinematic state of a run. Completed is sticky.
type State struct {
	Time      float64  `json:"time"`
	PosX      float64  `json:"pos_x"`
	PosY      float64  `json:"pos_y"`
	VelX      float64  `json:"vel_x"`
	VelY      float64  `json:"vel_y"`
	AccX      float64  `json:"acc_x"`
	AccY      float64  `json:"acc_y"`
	Completed bool     `json:"completed"`
	History   []Sample `json:"history"`
}

// View returns a copy that shares the history backing array but cannot
// append into it.
func (s State) View() State {
	s.History = slices.Clip(s.History)
	return s
}

// Sample captures the current kinematics stamped with time t.
func (s State) Sample(t float64) Sample {
	return Sample{T: t, X: s.PosX, Y: s.PosY, VX: s.VelX, VY: s.VelY, AX: s.AccX, AY: s.AccY}
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.Time, s.PosX, s.PosY, s.VelX, s.VelY, s.AccX, s.AccY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Steps is the number of successful steps taken since initialization.
func (s State) Steps() int {
	return len(s.History)
}
