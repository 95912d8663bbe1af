package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/prompt"
)

// Source names where a run's parameters come from. Layers apply in field
// order: defaults, preset, prompt, location, overrides.
type Source struct {
	Motion    string             `yaml:"motion"`
	Preset    string             `yaml:"preset,omitempty"`
	Prompt    string             `yaml:"prompt,omitempty"`
	Location  string             `yaml:"location,omitempty"`
	Overrides map[string]float64 `yaml:"params,omitempty"`
}

// Resolve builds validated parameters from src. A nil extractor uses
// prompt.Heuristic.
func Resolve(src Source, ex prompt.Extractor) (dynamo.Params, error) {
	mt, err := dynamo.ParseMotionType(src.Motion)
	if err != nil {
		return dynamo.Params{}, err
	}

	p := dynamo.Defaults(mt)
	if src.Preset != "" {
		preset, ok := config.GetPreset(mt, src.Preset)
		if !ok {
			return dynamo.Params{}, fmt.Errorf("%w: no preset %q for %s (have %v)",
				dynamo.ErrInvalidArgument, src.Preset, mt, config.ListPresets(mt))
		}
		p = preset
	}

	if src.Prompt != "" {
		if ex == nil {
			ex = prompt.Heuristic{}
		}
		p = ex.Extract(src.Prompt, mt)
	}

	if src.Location != "" {
		if p, err = config.ApplyLocation(p, src.Location); err != nil {
			return dynamo.Params{}, fmt.Errorf("%w: %v", dynamo.ErrInvalidArgument, err)
		}
	}

	names := make([]string, 0, len(src.Overrides))
	for name := range src.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.SetParam(name, src.Overrides[name]); err != nil {
			return dynamo.Params{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return dynamo.Params{}, err
	}
	return p, nil
}
