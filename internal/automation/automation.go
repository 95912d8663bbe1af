package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/experiment"
	"github.com/san-kum/kinelab/internal/prompt"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Concurrency int            `yaml:"concurrency"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. Zero Dt, Duration and Speed take
// the sim defaults.
type ScenarioStep struct {
	Name              string `yaml:"name"`
	experiment.Source `yaml:",inline"`
	Dt                float64 `yaml:"dt"`
	Duration          float64 `yaml:"duration"`
	Speed             float64 `yaml:"speed"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	for i := range scenario.Steps {
		if scenario.Steps[i].Name == "" {
			scenario.Steps[i].Name = fmt.Sprintf("%d-%s", i+1, scenario.Steps[i].Motion)
		}
	}
	return &scenario, nil
}

// Jobs resolves every step into an experiment job. Resolution errors stop
// the whole scenario since nothing has run yet.
func (s *Scenario) Jobs(defaults config.SimConfig, ex prompt.Extractor) ([]experiment.Job, error) {
	jobs := make([]experiment.Job, 0, len(s.Steps))
	for i, step := range s.Steps {
		src := step.Source
		if src.Location == "" && defaults.Location != "" {
			src.Location = defaults.Location
		}
		p, err := experiment.Resolve(src, ex)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		jobs = append(jobs, experiment.Job{
			Name: step.Name,
			Config: experiment.Config{
				Params:          p,
				Dt:              orDefault(step.Dt, defaults.Dt),
				Duration:        orDefault(step.Duration, defaults.MaxDuration),
				Speed:           orDefault(step.Speed, defaults.Speed),
				HistoryCapacity: defaults.HistoryCapacity,
			},
		})
	}
	return jobs, nil
}

// RunScenario executes all steps concurrently and returns one result per
// step in script order.
func RunScenario(ctx context.Context, s *Scenario, defaults config.SimConfig, opts ...experiment.Option) ([]experiment.JobResult, error) {
	jobs, err := s.Jobs(defaults, prompt.Heuristic{})
	if err != nil {
		return nil, err
	}
	return experiment.RunBatch(ctx, jobs, s.Concurrency, opts...), nil
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
