// Package physics holds the per-motion-type dynamics.
//
// Every [dynamo.MotionType] has exactly one [Motion] handler:
//
//   - [Ballistic]: projectile, free fall and vertical throw
//   - [Newton]: constant force translation along x
//   - [SpringMass]: horizontal oscillation about a fixed equilibrium
//   - [Incline]: slide down a frictionless ramp
//
// A handler knows how to build the initial state for its motion type and how
// to advance the scalar kinematics by one step. Bookkeeping shared by all
// motion types (time, history, completion stickiness) lives in sim.Step.
//
// Positions are in scenario units. The horizontal origins below are fixed per
// motion type so that every run fits the same 240 x 120 unit stage.
package physics
