package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/kinelab/internal/analysis"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

const (
	svgBackground = "#0a0a0a"
	svgGround     = "#555555"
	svgPath       = "#00ff88"
	svgObject     = "#ff00ff"
)

// WriteSVG draws the trajectory of run over its scene: the ground, the ramp
// for an incline and the spring anchor for a spring.
func WriteSVG(w io.Writer, run Run, opts Options) error {
	opts = opts.withDefaults()
	if len(run.Samples) < 2 {
		return fmt.Errorf("%w: svg needs at least 2 samples, have %d", dynamo.ErrInvalidArgument, len(run.Samples))
	}

	b := sceneBounds(run)
	width, height := float64(opts.Width), float64(opts.Height)
	project := func(x, y float64) (float64, float64) {
		return (x - b.MinX) / b.Width() * width, height - (y-b.MinY)/b.Height()*height
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, svgBackground)

	gx0, gy := project(b.MinX, 0)
	gx1, _ := project(b.MaxX, 0)
	fmt.Fprintf(bw, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
`, gx0, gy, gx1, gy, svgGround)

	switch run.Params.Motion {
	case dynamo.InclinedPlane:
		tx, ty := project(physics.Incline{}.RampTop(run.Params))
		bx, by := project(physics.RampX+physics.RampRun, 0)
		fmt.Fprintf(bw, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="none" stroke="%s"/>
`, tx, ty, bx, by, tx, by, svgGround)
	case dynamo.Spring:
		ax, ay := project(b.MinX, run.Samples[0].Y)
		fmt.Fprintf(bw, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4"/>
`, ax, ay-10, ax, ay+10, svgGround)
	}

	fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, svgPath)
	for i, s := range run.Samples {
		x, y := project(s.X, s.Y)
		if i == 0 {
			fmt.Fprintf(bw, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
		}
	}
	bw.WriteString("\"/>\n")

	last := run.Samples[len(run.Samples)-1]
	cx, cy := project(last.X, last.Y)
	fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="5" fill="%s"/>
</svg>
`, cx, cy, svgObject)

	return bw.Flush()
}

// sceneBounds pads the trajectory box by 10% and always includes the ground.
func sceneBounds(run Run) analysis.Bounds {
	b := analysis.TrajectoryBounds(run.Samples).Include(run.Samples[0].X, 0)
	if run.Params.Motion == dynamo.InclinedPlane {
		b = b.Include(physics.Incline{}.RampTop(run.Params)).Include(physics.RampX+physics.RampRun, 0)
	}

	padX := math.Max(b.Width()*0.1, 1)
	padY := math.Max(b.Height()*0.1, 1)
	return analysis.Bounds{
		MinX: b.MinX - padX, MaxX: b.MaxX + padX,
		MinY: b.MinY - padY, MaxY: b.MaxY + padY,
	}
}
