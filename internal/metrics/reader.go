package metrics

import (
	"github.com/san-kum/kinelab/internal/dynamo"
)

// GraphEvery is the chart decimation factor: every fifth sample is plotted.
const GraphEvery = 5

// Speeds returns |v| per sample.
func Speeds(h []dynamo.Sample) []float64 {
	return project(h, dynamo.Sample.Speed)
}

// Accelerations returns |a| per sample.
func Accelerations(h []dynamo.Sample) []float64 {
	return project(h, dynamo.Sample.Acceleration)
}

func Times(h []dynamo.Sample) []float64 {
	return project(h, func(s dynamo.Sample) float64 { return s.T })
}

func Heights(h []dynamo.Sample) []float64 {
	return project(h, func(s dynamo.Sample) float64 { return s.Y })
}

func Positions(h []dynamo.Sample) []float64 {
	return project(h, func(s dynamo.Sample) float64 { return s.X })
}

// Momentum is the vertical momentum m·vy shown by the data panel.
func Momentum(s dynamo.State, p dynamo.Params) float64 {
	return p.Mass * s.VelY
}

// Decimate keeps samples 0, every, 2·every, ... . every < 1 keeps all.
func Decimate(h []dynamo.Sample, every int) []dynamo.Sample {
	if every <= 1 {
		out := make([]dynamo.Sample, len(h))
		copy(out, h)
		return out
	}
	out := make([]dynamo.Sample, 0, len(h)/every+1)
	for i := 0; i < len(h); i += every {
		out = append(out, h[i])
	}
	return out
}

func project(h []dynamo.Sample, f func(dynamo.Sample) float64) []float64 {
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = f(s)
	}
	return out
}
