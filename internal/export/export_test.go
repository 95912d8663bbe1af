package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/experiment"
)

func finishedRun(t *testing.T, m dynamo.MotionType) Run {
	t.Helper()
	res, err := experiment.New(experiment.Config{
		Params:   dynamo.Defaults(m),
		Dt:       0.016,
		Duration: 5,
	}).Run(context.Background())
	require.NoError(t, err)
	return FromResult(res)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestWriteJSON(t *testing.T) {
	run := finishedRun(t, dynamo.Projectile)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, run))

	var decoded struct {
		RunID     string             `json:"run_id"`
		Completed bool               `json:"completed"`
		Params    map[string]any     `json:"params"`
		Metrics   map[string]float64 `json:"metrics"`
		Samples   []dynamo.Sample    `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, run.ID.String(), decoded.RunID)
	assert.True(t, decoded.Completed)
	assert.Equal(t, "projectile", decoded.Params["motion_type"])
	assert.Len(t, decoded.Samples, len(run.Samples))
	assert.Contains(t, decoded.Metrics, "max_height")
}

func TestWriteJSONEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Run{Params: dynamo.Defaults(dynamo.Spring)}))
	assert.Contains(t, buf.String(), `"samples": []`)
}

func TestWriteCSV(t *testing.T) {
	run := finishedRun(t, dynamo.FreeFall)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run.Samples))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(run.Samples)+1)
	assert.Equal(t, []string{"t", "x", "y", "vx", "vy", "ax", "ay", "speed", "accel"}, records[0])
	assert.Equal(t, "0.000000", records[1][0])
	assert.Equal(t, "120.000000", records[1][1])
}

func TestWriteSVG(t *testing.T) {
	for _, m := range []dynamo.MotionType{dynamo.Projectile, dynamo.InclinedPlane, dynamo.Spring} {
		t.Run(m.String(), func(t *testing.T) {
			run := finishedRun(t, m)
			if m == dynamo.Spring {
				run.Samples = append(run.Samples, dynamo.Sample{T: 9, X: 130})
			}

			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, run, Options{Width: 400, Height: 300}))

			out := buf.String()
			assert.True(t, strings.HasPrefix(out, "<?xml"))
			assert.Contains(t, out, `width="400" height="300"`)
			assert.Contains(t, out, `<path fill="none"`)
			assert.Contains(t, out, "<circle")
			assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
			if m == dynamo.InclinedPlane {
				assert.Contains(t, out, "<polygon")
			}
		})
	}
}

func TestWriteSVGNeedsSamples(t *testing.T) {
	err := WriteSVG(&bytes.Buffer{}, Run{Samples: make([]dynamo.Sample, 1)}, Options{})
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestWritePNG(t *testing.T) {
	run := finishedRun(t, dynamo.Projectile)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, run, Options{Width: 320, Height: 480, Every: 5}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))

	err := WritePNG(&bytes.Buffer{}, Run{Samples: make([]dynamo.Sample, 3)}, Options{Every: 5})
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}

func TestWriteDispatch(t *testing.T) {
	run := finishedRun(t, dynamo.NewtonSecondLaw)
	for _, f := range Formats() {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, run, Options{}), f)
		assert.NotZero(t, buf.Len(), f)
	}
	assert.ErrorIs(t, Write(&bytes.Buffer{}, "bmp", run, Options{}), dynamo.ErrInvalidArgument)
}
