// Package analysis provides signal tools over a run's history.
//
//   - [FFT], [PowerSpectrum]: radix-2 spectrum of a sampled series
//   - [DominantPeriod]: period of the strongest oscillation, used to check a
//     spring run against 2π√(m/k)
//   - [TrajectoryBounds]: extent of a trajectory, used to scale drawings
//
// Series come from the metrics package, e.g. metrics.Positions(history).
package analysis
