package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/kinelab/internal/dynamo"
)

var csvHeader = []string{"t", "x", "y", "vx", "vy", "ax", "ay", "speed", "accel"}

// WriteCSV writes one row per sample after a header row.
func WriteCSV(w io.Writer, h []dynamo.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, s := range h {
		for i, v := range []float64{s.T, s.X, s.Y, s.VX, s.VY, s.AX, s.AY, s.Speed(), s.Acceleration()} {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
