package analysis

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Bounds is the axis-aligned box around a trajectory.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// TrajectoryBounds returns the box around every sample of h. An empty
// history gives the zero box.
func TrajectoryBounds(h []dynamo.Sample) Bounds {
	if len(h) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, s := range h {
		b.MinX = math.Min(b.MinX, s.X)
		b.MaxX = math.Max(b.MaxX, s.X)
		b.MinY = math.Min(b.MinY, s.Y)
		b.MaxY = math.Max(b.MaxY, s.Y)
	}
	return b
}

// Include grows b to contain (x, y).
func (b Bounds) Include(x, y float64) Bounds {
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
	return b
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }
