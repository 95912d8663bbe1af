package viz

import (
	"math"

	"github.com/san-kum/kinelab/internal/analysis"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

const (
	minSceneHeight = 20.0
	gridStep       = 20.0
	springAnchorX  = physics.SpringEquilibrium - 80
	trailLimit     = 400
)

// viewport maps world metres onto canvas dots. y grows upwards in the world
// and downwards on the canvas.
type viewport struct {
	b      analysis.Bounds
	pw, ph int
}

func (v viewport) project(x, y float64) (int, int) {
	px := (x - v.b.MinX) / v.b.Width() * float64(v.pw-1)
	py := float64(v.ph-1) - (y-v.b.MinY)/v.b.Height()*float64(v.ph-1)
	return int(math.Round(px)), int(math.Round(py))
}

// scale is dots per metre along x.
func (v viewport) scale() float64 {
	return float64(v.pw-1) / v.b.Width()
}

// sceneBounds is the world box a run needs: the stage, the scenery and
// every visited point. It only grows during a run so the picture does not
// jitter.
func sceneBounds(prev analysis.Bounds, p dynamo.Params, s dynamo.State) analysis.Bounds {
	b := prev
	if b == (analysis.Bounds{}) {
		b = analysis.Bounds{MinX: 0, MaxX: physics.StageWidth, MinY: 0, MaxY: minSceneHeight}
	}
	b = b.Include(s.PosX, s.PosY).Include(0, p.InitialHeight)

	switch p.Motion {
	case dynamo.InclinedPlane:
		b = b.Include(physics.Incline{}.RampTop(p))
	case dynamo.Projectile, dynamo.VerticalThrow:
		vy := p.InitialVelocity * math.Sin(p.AngleRad())
		if p.Motion == dynamo.VerticalThrow {
			vy = p.InitialVelocity
		}
		b = b.Include(s.PosX, p.InitialHeight+vy*vy/(2*p.Gravity))
	}
	for _, h := range s.History {
		b = b.Include(h.X, h.Y)
	}
	return b
}

// padded adds headroom above the highest point.
func padded(b analysis.Bounds) analysis.Bounds {
	b.MaxY += b.Height() * 0.1
	return b
}

type sceneOptions struct {
	grid, trail bool
}

func drawScene(c *Canvas, b analysis.Bounds, p dynamo.Params, s dynamo.State, opts sceneOptions) {
	c.Clear()
	pw, ph := c.PixelSize()
	v := viewport{b: padded(b), pw: pw, ph: ph}

	if opts.grid {
		drawGrid(c, v)
	}

	gx0, gy := v.project(v.b.MinX, 0)
	gx1, _ := v.project(v.b.MaxX, 0)
	c.DrawLine(gx0, gy, gx1, gy)

	drawEnvironment(c, v, p)

	switch p.Motion {
	case dynamo.InclinedPlane:
		tx, ty := v.project(physics.Incline{}.RampTop(p))
		bx, by := v.project(physics.RampX+physics.RampRun, 0)
		c.DrawLine(tx, ty, bx, by)
		c.DrawLine(tx, ty, tx, by)
	case dynamo.Spring:
		drawSpring(c, v, s)
	case dynamo.NewtonSecondLaw:
		drawForce(c, v, p, s)
	}

	drawActor(c, v, p)

	if opts.trail {
		h := s.History
		if len(h) > trailLimit {
			h = h[len(h)-trailLimit:]
		}
		for _, smp := range h {
			c.Set(v.project(smp.X, smp.Y))
		}
	}

	drawObject(c, v, p, s)
}

func drawGrid(c *Canvas, v viewport) {
	pw, ph := c.PixelSize()
	for y := math.Ceil(v.b.MinY/gridStep) * gridStep; y <= v.b.MaxY; y += gridStep {
		_, py := v.project(0, y)
		c.Dotted(0, pw-1, py, 6)
	}
	for x := math.Ceil(v.b.MinX/gridStep) * gridStep; x <= v.b.MaxX; x += gridStep {
		px, _ := v.project(x, 0)
		for py := 0; py < ph; py += 6 {
			c.Set(px, py)
		}
	}
}

func drawEnvironment(c *Canvas, v viewport, p dynamo.Params) {
	h := p.InitialHeight
	switch p.Environment {
	case dynamo.EnvTower:
		x0, y0 := v.project(physics.CenterX+4, h)
		x1, y1 := v.project(physics.CenterX+16, 0)
		c.DrawRect(x0, y0, x1, y1)
		for y := 5.0; y < h; y += 10 {
			wx, wy := v.project(physics.CenterX+10, y)
			c.Set(wx, wy)
		}
	case dynamo.EnvCliff:
		x0, y0 := v.project(0, h)
		x1, y1 := v.project(physics.LaunchX, 0)
		c.DrawLine(x0, y0, x1, y0)
		c.DrawLine(x1, y0, x1, y1)
	case dynamo.EnvBridge:
		x0, y := v.project(physics.CenterX-60, h)
		x1, _ := v.project(physics.CenterX-4, h)
		_, ground := v.project(0, 0)
		c.DrawLine(x0, y, x1, y)
		for _, px := range []int{x0, (x0 + x1) / 2} {
			c.DrawLine(px, y, px, ground)
		}
	case dynamo.EnvMoon:
		_, ground := v.project(0, 0)
		pw, _ := c.PixelSize()
		for i, px := range []int{pw / 8, pw / 2, pw * 7 / 8} {
			r := 2 + i%2
			c.DrawLine(px-r, ground+1, px+r, ground+1)
		}
	}
}

func drawActor(c *Canvas, v viewport, p dynamo.Params) {
	if p.Motion != dynamo.Projectile && p.Motion != dynamo.VerticalThrow {
		return
	}
	x, y := v.project(physics.LaunchX, p.InitialHeight)
	switch p.Actor {
	case dynamo.ActorCannon:
		const barrel = 10.0
		rad := p.AngleRad()
		c.FillRect(x-3, y, x+3, y+3)
		c.DrawLine(x, y, x+int(barrel*math.Cos(rad)), y-int(barrel*math.Sin(rad)))
	case dynamo.ActorHuman:
		bx := x - 4
		c.FillCircle(bx, y-10, 1)
		c.DrawLine(bx, y-8, bx, y-3)
		c.DrawLine(bx, y-3, bx-2, y)
		c.DrawLine(bx, y-3, bx+2, y)
		c.DrawLine(bx, y-6, x, y-7)
	}
}

func drawSpring(c *Canvas, v viewport, s dynamo.State) {
	wallX, cy := v.project(springAnchorX, s.PosY+2)
	c.DrawLine(wallX, cy-6, wallX, cy+6)

	massX, _ := v.project(s.PosX, s.PosY)
	const coils = 10
	step := float64(massX-wallX-3) / coils
	prevX, prevY := wallX, cy
	for i := 1; i <= coils; i++ {
		currX, currY := wallX+int(float64(i)*step), cy+3
		if i%2 == 0 {
			currY = cy - 3
		}
		c.DrawLine(prevX, prevY, currX, currY)
		prevX, prevY = currX, currY
	}
	c.DrawLine(prevX, prevY, massX-3, cy)
}

func drawForce(c *Canvas, v viewport, p dynamo.Params, s dynamo.State) {
	if p.ForceOrZero() == 0 {
		return
	}
	x, y := v.project(s.PosX, s.PosY+2)
	dir := 1
	if p.ForceOrZero() < 0 {
		dir = -1
	}
	tip := x + dir*12
	c.DrawLine(x+dir*4, y, tip, y)
	c.DrawLine(tip, y, tip-dir*2, y-2)
	c.DrawLine(tip, y, tip-dir*2, y+2)
}

func drawObject(c *Canvas, v viewport, p dynamo.Params, s dynamo.State) {
	x, y := v.project(s.PosX, s.PosY)
	switch p.Object {
	case dynamo.ObjectCrate, dynamo.ObjectBlock:
		c.FillRect(x-3, y-5, x+3, y)
	default:
		c.FillCircle(x, y-2, 2)
	}
}
