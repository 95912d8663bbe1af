package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/kinelab/internal/dynamo"
)

func WriteJSON(w io.Writer, run Run) error {
	if run.Samples == nil {
		run.Samples = []dynamo.Sample{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}
