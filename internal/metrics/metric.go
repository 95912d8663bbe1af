package metrics

import (
	"github.com/san-kum/kinelab/internal/dynamo"
)

// Metric accumulates a scalar over the samples of a run.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

// Defaults picks the metrics that mean something for p.Motion.
func Defaults(p dynamo.Params) []Metric {
	switch p.Motion {
	case dynamo.Projectile, dynamo.FreeFall, dynamo.VerticalThrow:
		return []Metric{NewMaxHeight(), NewDistance(), NewPeakSpeed(), NewEnergyDrift(Energy(p))}
	case dynamo.NewtonSecondLaw:
		return []Metric{NewDistance(), NewPeakSpeed()}
	case dynamo.Spring:
		return []Metric{NewAmplitude(), NewPeakSpeed(), NewEnergyDrift(Energy(p))}
	case dynamo.InclinedPlane:
		return []Metric{NewDistance(), NewPeakSpeed(), NewEnergyDrift(Energy(p))}
	}
	return []Metric{NewPeakSpeed()}
}

// Observe feeds every sample of h to each metric.
func Observe(ms []Metric, h []dynamo.Sample) {
	for _, s := range h {
		for _, m := range ms {
			m.Observe(s)
		}
	}
}

// Values collects the metrics by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
