package sim_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/sim"
)

var _ = Describe("Driver", func() {
	var (
		d      *sim.Driver
		seenMu sync.Mutex
		seen   []sim.Snapshot
	)

	BeforeEach(func() {
		var err error
		d, err = sim.NewDriver(dynamo.Defaults(dynamo.Projectile))
		Expect(err).NotTo(HaveOccurred())
		seen = nil
		cancel := d.Subscribe(func(s sim.Snapshot) {
			seenMu.Lock()
			seen = append(seen, s)
			seenMu.Unlock()
		})
		DeferCleanup(cancel)
	})

	It("starts idle with an initialized state", func() {
		snap := d.Snapshot()
		Expect(snap.Phase).To(Equal(sim.PhaseIdle))
		Expect(snap.State.Time).To(BeZero())
		Expect(snap.State.History).To(BeEmpty())
		Expect(snap.State.PosX).To(Equal(20.0))
		Expect(snap.Speed).To(Equal(1.0))
	})

	It("ignores ticks until played", func() {
		Expect(d.Tick(0.016)).To(Succeed())
		Expect(d.Snapshot().State.Time).To(BeZero())
		Expect(seen).To(BeEmpty())
	})

	It("moves between running and paused", func() {
		d.SetPlaying(true)
		Expect(d.Phase()).To(Equal(sim.PhaseRunning))

		Expect(d.Tick(0.016)).To(Succeed())
		d.SetPlaying(false)
		Expect(d.Phase()).To(Equal(sim.PhasePaused))

		Expect(d.Tick(0.016)).To(Succeed())
		Expect(d.Snapshot().State.History).To(HaveLen(1))

		d.SetPlaying(true)
		Expect(d.Phase()).To(Equal(sim.PhaseRunning))
	})

	It("scales wall-clock time by speed", func() {
		Expect(d.SetSpeed(2)).To(Succeed())
		d.SetPlaying(true)
		Expect(d.Tick(0.01)).To(Succeed())
		Expect(d.Snapshot().State.Time).To(BeNumerically("~", 0.02, 1e-12))
	})

	It("rejects non-positive speed", func() {
		Expect(d.SetSpeed(0)).To(MatchError(dynamo.ErrInvalidArgument))
		Expect(d.SetSpeed(-1)).To(MatchError(dynamo.ErrInvalidArgument))
		Expect(d.Snapshot().Speed).To(Equal(1.0))
	})

	It("surfaces step errors without changing state", func() {
		d.SetPlaying(true)
		Expect(d.Tick(0)).To(MatchError(dynamo.ErrInvalidArgument))
		Expect(d.Snapshot().State.History).To(BeEmpty())
	})

	It("completes and stays completed", func() {
		d.SetPlaying(true)
		for i := 0; i < 1000 && d.Phase() != sim.PhaseCompleted; i++ {
			Expect(d.Tick(0.016)).To(Succeed())
		}
		Expect(d.Phase()).To(Equal(sim.PhaseCompleted))

		done := d.Snapshot()
		Expect(d.Tick(0.016)).To(Succeed())
		d.SetPlaying(true)
		Expect(d.Snapshot().State).To(Equal(done.State))
		Expect(d.Phase()).To(Equal(sim.PhaseCompleted))
	})

	It("returns to idle with a new run on SetParameters", func() {
		d.SetPlaying(true)
		Expect(d.Tick(0.016)).To(Succeed())
		before := d.Snapshot()

		Expect(d.SetParameters(dynamo.Defaults(dynamo.FreeFall))).To(Succeed())
		after := d.Snapshot()

		Expect(after.Phase).To(Equal(sim.PhaseIdle))
		Expect(after.RunID).NotTo(Equal(before.RunID))
		Expect(after.Params.Motion).To(Equal(dynamo.FreeFall))
		Expect(after.State.PosY).To(Equal(50.0))
		Expect(after.State.History).To(BeEmpty())
	})

	It("rejects invalid parameters and keeps the current run", func() {
		p := dynamo.Defaults(dynamo.Spring)
		p.Mass = 0
		Expect(d.SetParameters(p)).To(MatchError(dynamo.ErrParameterBounds))
		Expect(d.Params().Motion).To(Equal(dynamo.Projectile))
	})

	It("resets the current parameters", func() {
		d.SetPlaying(true)
		Expect(d.Tick(0.016)).To(Succeed())
		id := d.Snapshot().RunID

		d.Reset()
		snap := d.Snapshot()
		Expect(snap.Phase).To(Equal(sim.PhaseIdle))
		Expect(snap.State.History).To(BeEmpty())
		Expect(snap.RunID).NotTo(Equal(id))
		Expect(snap.Params).To(Equal(dynamo.Defaults(dynamo.Projectile)))
	})

	It("publishes each change in order", func() {
		d.SetPlaying(true)
		Expect(d.Tick(0.016)).To(Succeed())
		Expect(d.Tick(0.016)).To(Succeed())

		Expect(seen).To(HaveLen(3))
		Expect(seen[0].Phase).To(Equal(sim.PhaseRunning))
		Expect(seen[1].State.History).To(HaveLen(1))
		Expect(seen[2].State.History).To(HaveLen(2))
	})

	It("publishes views that cannot grow into the live buffer", func() {
		d.SetPlaying(true)
		Expect(d.Tick(0.016)).To(Succeed())
		first := d.Snapshot().State.History
		Expect(cap(first)).To(Equal(len(first)))

		Expect(d.Tick(0.016)).To(Succeed())
		Expect(first).To(HaveLen(1))
	})

	It("stops notifying after cancel", func() {
		count := 0
		cancel := d.Subscribe(func(sim.Snapshot) { count++ })
		d.SetPlaying(true)
		cancel()
		cancel()
		Expect(d.Tick(0.016)).To(Succeed())
		Expect(count).To(Equal(1))
	})

	It("never publishes old params with a new state", func() {
		var mu sync.Mutex
		mixed := 0
		cancel := d.Subscribe(func(s sim.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			if s.Params.Motion == dynamo.FreeFall && s.State.PosX != 120 {
				mixed++
			}
			if s.Params.Motion == dynamo.Projectile && s.State.PosX == 120 {
				mixed++
			}
		})
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 200; i++ {
				d.SetPlaying(true)
				_ = d.Tick(0.001)
			}
		}()
		go func() {
			defer GinkgoRecover()
			defer wg.Done()
			for i := 0; i < 50; i++ {
				m := dynamo.Projectile
				if i%2 == 0 {
					m = dynamo.FreeFall
				}
				Expect(d.SetParameters(dynamo.Defaults(m))).To(Succeed())
			}
		}()
		wg.Wait()

		mu.Lock()
		defer mu.Unlock()
		Expect(mixed).To(BeZero())
	})

	It("delivers snapshots in publication order across goroutines", func() {
		for trial := 0; trial < 50; trial++ {
			dd, err := sim.NewDriver(dynamo.Defaults(dynamo.Projectile))
			Expect(err).NotTo(HaveOccurred())

			var mu sync.Mutex
			var got []sim.Snapshot
			cancel := dd.Subscribe(func(s sim.Snapshot) {
				if s.Params.Motion == dynamo.Projectile {
					time.Sleep(200 * time.Microsecond)
				}
				mu.Lock()
				got = append(got, s)
				mu.Unlock()
			})

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				dd.SetPlaying(true)
				for i := 0; i < 20; i++ {
					Expect(dd.Tick(0.001)).To(Succeed())
				}
			}()
			time.Sleep(time.Duration(trial%5) * 500 * time.Microsecond)
			Expect(dd.SetParameters(dynamo.Defaults(dynamo.FreeFall))).To(Succeed())
			wg.Wait()
			cancel()

			mu.Lock()
			Expect(got).NotTo(BeEmpty())
			for i := 1; i < len(got); i++ {
				Expect(got[i].Seq).To(BeNumerically(">", got[i-1].Seq), "trial %d", trial)
			}
			last := got[len(got)-1]
			mu.Unlock()

			current := dd.Snapshot()
			Expect(last.RunID).To(Equal(current.RunID), "trial %d", trial)
			Expect(last.Params.Motion).To(Equal(dynamo.FreeFall))
		}
	})

	It("stamps published snapshots with increasing sequence numbers", func() {
		start := d.Snapshot().Seq
		d.SetPlaying(true)
		Expect(d.Tick(0.016)).To(Succeed())
		Expect(d.Snapshot().Seq).To(Equal(start + 2))
		Expect(seen[len(seen)-1].Seq).To(Equal(start + 2))
	})
})
