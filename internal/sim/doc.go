// Package sim runs kinematics simulations.
//
// [Step] is the pure integrator: one state in, the next state out. [Driver]
// wraps it with play/pause/speed control and publishes a [Snapshot] to
// subscribers after every change. [RunClock] feeds a driver from a ticker
// when no UI event loop is available.
//
//	d, _ := sim.NewDriver(dynamo.Defaults(dynamo.Projectile))
//	cancel := d.Subscribe(func(s sim.Snapshot) { fmt.Println(s.State.PosY) })
//	defer cancel()
//	d.SetPlaying(true)
//	_ = sim.RunClock(ctx, d, sim.DefaultInterval)
package sim
