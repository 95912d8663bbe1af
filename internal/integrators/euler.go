package integrators

// SemiImplicit advances one axis by dt: velocity from the current
// acceleration first, then position from the new velocity.
func SemiImplicit(x, v, a, dt float64) (float64, float64) {
	v = Velocity(v, a, dt)
	return x + v*dt, v
}

// Velocity is the velocity half of SemiImplicit, for motions that project
// the new velocity onto a path themselves.
func Velocity(v, a, dt float64) float64 {
	return v + a*dt
}

// Euler is the explicit forward scheme: position moves with the old
// velocity. It is kept for comparison runs against SemiImplicit.
func Euler(x, v, a, dt float64) (float64, float64) {
	return x + v*dt, v + a*dt
}
