package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/experiment"
	"github.com/san-kum/kinelab/internal/prompt"
)

var (
	presetName string
	promptText string
	location   string
	dt         float64
	speed      float64
	duration   float64
)

var paramUsage = map[string]string{
	"velocity":     "initial speed (m/s)",
	"angle":        "launch or incline angle (degrees)",
	"height":       "initial height (m)",
	"mass":         "mass (kg)",
	"gravity":      "gravitational acceleration (m/s²)",
	"force":        "applied force (N)",
	"k":            "spring constant (N/m)",
	"friction":     "friction coefficient (shown, not simulated)",
	"displacement": "initial spring stretch from equilibrium (m)",
}

// addRunFlags registers the parameter source flags and one flag per
// numeric parameter. Only flags the user sets override anything.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&presetName, "preset", "", "start from a named preset")
	f.StringVar(&promptText, "prompt", "", "describe the problem in plain English")
	f.StringVar(&location, "location", "", "gravity location (earth, moon, mars, jupiter)")
	f.Float64Var(&dt, "dt", 0, "time step in seconds (default from config)")
	f.Float64Var(&speed, "speed", 0, "simulation speed factor (default from config)")
	f.Float64Var(&duration, "time", 0, "maximum simulated time in seconds (default from config)")
	for _, name := range dynamo.ParamNames() {
		f.Float64(name, 0, paramUsage[name])
	}
}

func resolveParams(cmd *cobra.Command, motion string) (dynamo.Params, error) {
	src := experiment.Source{
		Motion:    motion,
		Preset:    presetName,
		Prompt:    promptText,
		Location:  location,
		Overrides: map[string]float64{},
	}
	if src.Location == "" && cfg.Sim.Location != "earth" {
		src.Location = cfg.Sim.Location
	}
	for _, name := range dynamo.ParamNames() {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			return dynamo.Params{}, err
		}
		src.Overrides[name] = v
	}

	p, err := experiment.Resolve(src, prompt.Heuristic{})
	if err != nil {
		return dynamo.Params{}, fmt.Errorf("resolving %s parameters: %w", motion, err)
	}
	return p, nil
}

// runConfig builds a headless run from flags over the sim config.
func runConfig(cmd *cobra.Command, motion string) (experiment.Config, error) {
	p, err := resolveParams(cmd, motion)
	if err != nil {
		return experiment.Config{}, err
	}
	c := experiment.Config{
		Params:          p,
		Dt:              cfg.Sim.Dt,
		Duration:        cfg.Sim.MaxDuration,
		Speed:           cfg.Sim.Speed,
		HistoryCapacity: cfg.Sim.HistoryCapacity,
	}
	if cmd.Flags().Changed("dt") {
		c.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		c.Duration = duration
	}
	if cmd.Flags().Changed("speed") {
		c.Speed = speed
	}
	return c, nil
}

func runExperiment(cmd *cobra.Command, motion string) (*experiment.Result, error) {
	c, err := runConfig(cmd, motion)
	if err != nil {
		return nil, err
	}
	return experiment.New(c, experiment.WithLogger(logger)).Run(cmd.Context())
}

func motionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := dynamo.ParseMotionType(args[0])
	return err
}

var motionNames = func() []string {
	var names []string
	for _, m := range dynamo.MotionTypes() {
		names = append(names, m.String())
	}
	return names
}()
