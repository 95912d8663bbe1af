// Package dynamo provides the core data model of a kinematics run.
//
// The package defines the values every other layer passes around:
//
//   - [MotionType]: closed set of scenarios (projectile, free fall, ...)
//   - [Params]: the parameter model of one run, replaced wholesale
//   - [State]: the single mutable kinematic state of a running simulation
//   - [Sample]: an immutable point of the trajectory history
//
// Positions are in scenario units (abstract meters). Horizontal origins are
// fixed per motion type and are not user-configurable.
//
// # Example
//
//	p := dynamo.Defaults(dynamo.Projectile)
//	s := physics.Initialize(p)
//	s, err := sim.Step(s, p, 0.016)
//
// # Ownership
//
// A State owns its History. Stepping appends to the slice in place, so a
// State must be treated as consumed once it has been stepped; readers that
// need to hold on to a state take a [State.View].
package dynamo
