// Package export writes finished runs to files: JSON records, CSV sample
// tables, SVG trajectory drawings and PNG time-series charts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/experiment"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

func Formats() []Format { return []Format{FormatJSON, FormatCSV, FormatSVG, FormatPNG} }

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown export format %q", dynamo.ErrInvalidArgument, s)
}

// Run is everything an exporter needs from one finished run.
type Run struct {
	ID        uuid.UUID          `json:"run_id"`
	Params    dynamo.Params      `json:"params"`
	Dt        float64            `json:"dt"`
	Completed bool               `json:"completed"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Samples   []dynamo.Sample    `json:"samples"`
}

func FromResult(r *experiment.Result) Run {
	return Run{
		ID:        r.RunID,
		Params:    r.Params,
		Dt:        r.Dt,
		Completed: r.Completed,
		Duration:  r.Final.Time,
		Metrics:   r.Metrics,
		Samples:   r.Final.History,
	}
}

// Options sizes the image formats. Zero fields take the defaults.
type Options struct {
	Width  int
	Height int
	// Every keeps one chart point per Every samples.
	Every int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Every <= 0 {
		o.Every = 1
	}
	return o
}

// Write encodes run to w in the given format.
func Write(w io.Writer, f Format, run Run, opts Options) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, run)
	case FormatCSV:
		return WriteCSV(w, run.Samples)
	case FormatSVG:
		return WriteSVG(w, run, opts)
	case FormatPNG:
		return WritePNG(w, run, opts)
	}
	return fmt.Errorf("%w: unknown export format %q", dynamo.ErrInvalidArgument, f)
}
