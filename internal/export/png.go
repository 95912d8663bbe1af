package export

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/metrics"
)

const pngDPI = 96

type series struct {
	title, unit string
	color       color.RGBA
	values      func([]dynamo.Sample) []float64
}

var chartSeries = []series{
	{"Height", "y (m)", color.RGBA{R: 0x00, G: 0xcc, B: 0x66, A: 0xff}, metrics.Heights},
	{"Speed", "|v| (m/s)", color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}, metrics.Speeds},
	{"Acceleration", "|a| (m/s²)", color.RGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}, metrics.Accelerations},
}

// WritePNG renders height, speed and acceleration against time as three
// stacked charts.
func WritePNG(w io.Writer, run Run, opts Options) error {
	opts = opts.withDefaults()
	h := metrics.Decimate(run.Samples, opts.Every)
	if len(h) < 2 {
		return fmt.Errorf("%w: chart needs at least 2 points, have %d", dynamo.ErrInvalidArgument, len(h))
	}

	times := metrics.Times(h)
	plots := make([][]*plot.Plot, len(chartSeries))
	for i, s := range chartSeries {
		p, err := linePlot(fmt.Sprintf("%s (%s)", s.title, run.Params.Motion), s.unit, times, s.values(h), s.color)
		if err != nil {
			return fmt.Errorf("%s chart: %w", s.title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	c := vgimg.NewWith(
		vgimg.UseWH(pixels(opts.Width), pixels(opts.Height)),
		vgimg.UseDPI(pngDPI),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Points(6)}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func linePlot(title, ylabel string, xs, ys []float64, col color.RGBA) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = col
	p.Add(line)
	return p, nil
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / pngDPI
}
