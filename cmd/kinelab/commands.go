package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinelab/internal/analysis"
	"github.com/san-kum/kinelab/internal/automation"
	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/experiment"
	"github.com/san-kum/kinelab/internal/export"
	"github.com/san-kum/kinelab/internal/metrics"
	"github.com/san-kum/kinelab/internal/observability"
	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/prompt"
	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/viz"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [motion]",
		Short:   "run a simulation headless and print a summary",
		Example: `  kinelab run projectile --angle 30 --velocity 25
  kinelab run free_fall --prompt "a stone falls from a 80m tower on mars"`,
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExperiment(cmd, args[0])
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), res)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func printSummary(out io.Writer, res *experiment.Result) error {
	s, p := res.Final, res.Params
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", res.RunID)
	fmt.Fprintf(w, "motion\t%s\n", p.Motion.Title())
	fmt.Fprintf(w, "completed\t%t\n", res.Completed)
	fmt.Fprintf(w, "steps\t%d (dt %.4fs)\n", res.Steps(), res.Dt)
	fmt.Fprintf(w, "time\t%.3f s\n", s.Time)
	fmt.Fprintf(w, "position\t(%.3f, %.3f) m\n", s.PosX, s.PosY)
	fmt.Fprintf(w, "velocity\t(%.3f, %.3f) m/s\n", s.VelX, s.VelY)
	fmt.Fprintf(w, "gravity\t%.2f m/s²\n", p.Gravity)
	fmt.Fprintf(w, "momentum\t%.3f kg·m/s\n", metrics.Momentum(s, p))
	for _, name := range sortedKeys(res.Metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", name, res.Metrics[name])
	}
	return w.Flush()
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "live [motion]",
		Short:     "watch a simulation in the terminal",
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveParams(cmd, args[0])
			if err != nil {
				return err
			}

			// the alt screen owns the terminal, so logs only go to the file sink
			l, err := observability.New(cfg.Logger, zapcore.AddSync(io.Discard))
			if err != nil {
				return err
			}
			defer l.Sync()

			s := cfg.Sim.Speed
			if cmd.Flags().Changed("speed") {
				s = speed
			}
			d, err := sim.NewDriver(p,
				sim.WithLogger(l),
				sim.WithSpeed(s),
				sim.WithHistoryCapacity(cfg.Sim.HistoryCapacity),
			)
			if err != nil {
				return err
			}
			return viz.Run(cmd.Context(), d, cfg.View, prompt.Heuristic{})
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [motion] [text]",
		Short: "extract parameters from a problem statement",
		Example: `  kinelab parse spring "a 2kg block on a k=300 spring stretched 15m"
  kinelab parse projectile "a cannon fires at 60° with 50 m/s on the moon"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := dynamo.ParseMotionType(args[0])
			if err != nil {
				return err
			}
			p := prompt.Heuristic{}.Extract(strings.Join(args[1:], " "), mt)
			if err := p.Validate(); err != nil {
				logger.Warn("extracted parameters are out of bounds", zap.Error(err))
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(p)
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [motion]",
		Short: "list scenario presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			motions := dynamo.MotionTypes()
			if len(args) == 1 {
				mt, err := dynamo.ParseMotionType(args[0])
				if err != nil {
					return err
				}
				motions = []dynamo.MotionType{mt}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MOTION\tPRESET\tPARAMETERS")
			for _, mt := range motions {
				for _, name := range config.ListPresets(mt) {
					p, _ := config.GetPreset(mt, name)
					fmt.Fprintf(w, "%s\t%s\t%s\n", mt, name, formatParams(p))
				}
			}
			return w.Flush()
		},
	}
}

func formatParams(p dynamo.Params) string {
	values := p.GetParams()
	parts := make([]string, 0, len(values))
	for _, name := range sortedKeys(values) {
		parts = append(parts, fmt.Sprintf("%s=%g", name, values[name]))
	}
	return strings.Join(parts, " ")
}

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export [motion]",
		Short: "run a simulation and export it as json, csv, svg or png",
		Example: `  kinelab export projectile --out flight.png
  kinelab export spring --displacement 20 --time 5 --format csv`,
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			if format == "" {
				format = string(export.FormatJSON)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			res, err := runExperiment(cmd, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			opts := export.Options{Width: cfg.Export.Width, Height: cfg.Export.Height, Every: cfg.Export.ChartEvery}
			if err := export.Write(w, f, export.FromResult(res), opts); err != nil {
				return fmt.Errorf("exporting %s: %w", f, err)
			}
			logger.Info("exported run",
				zap.Stringer("run", res.RunID),
				zap.String("format", string(f)),
				zap.String("out", out),
				zap.Int("samples", res.Steps()))
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&format, "format", "", "json, csv, svg or png (default from --out extension, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "plot [motion]",
		Short:     "plot height, speed and acceleration against time",
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExperiment(cmd, args[0])
			if err != nil {
				return err
			}
			h := metrics.Decimate(res.Final.History, cfg.View.GraphEvery)
			if len(h) < 2 {
				return fmt.Errorf("%w: not enough samples to plot (%d)", dynamo.ErrInvalidArgument, len(h))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %d samples over %.2fs\n\n", res.Params.Motion.Title(), res.Steps(), res.Final.Time)
			charts := []struct {
				caption string
				data    []float64
			}{
				{"height (m)", metrics.Heights(h)},
				{"speed (m/s)", metrics.Speeds(h)},
				{"acceleration (m/s²)", metrics.Accelerations(h)},
			}
			for _, c := range charts {
				graph := asciigraph.Plot(c.data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(c.caption),
				)
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		param       string
		from, to    float64
		steps       int
		concurrency int
		best        string
	)
	cmd := &cobra.Command{
		Use:   "sweep [motion]",
		Short: "run one simulation per value of a parameter",
		Example: `  kinelab sweep projectile --param angle --from 0 --to 90 --steps 10
  kinelab sweep free_fall --param height --from 10 --to 100 --steps 10 --best ""`,
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := runConfig(cmd, args[0])
			if err != nil {
				return err
			}
			points, err := experiment.RunSweep(cmd.Context(), experiment.Sweep{
				Base:        c.Params,
				Param:       param,
				From:        from,
				To:          to,
				Steps:       steps,
				Dt:          c.Dt,
				Duration:    c.Duration,
				Concurrency: concurrency,
			}, experiment.WithLogger(logger))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "%s\ttime (s)\tdistance (m)\tmax height (m)\tpeak speed (m/s)\tcompleted\t\n", param)
			for _, pt := range points {
				r := pt.Result
				fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%t\t\n",
					pt.Value, r.Final.Time, r.Metrics["distance"], maxHeight(r), r.Metrics["peak_speed"], r.Completed)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if best != "" {
				if pt, ok := experiment.Best(points, best, true); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "\nbest %s: %s=%.3f (%.3f)\n", best, param, pt.Value, pt.Result.Metrics[best])
				}
			}
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&param, "param", "angle", "parameter to vary")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 90, "last value")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of values")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel runs (default GOMAXPROCS)")
	cmd.Flags().StringVar(&best, "best", "distance", "metric to maximize in the report, empty for none")
	return cmd
}

func maxHeight(r *experiment.Result) float64 {
	if v, ok := r.Metrics["max_height"]; ok {
		return v
	}
	peak := 0.0
	for _, y := range metrics.Heights(r.Final.History) {
		peak = max(peak, y)
	}
	return peak
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			results, err := automation.RunScenario(cmd.Context(), sc, cfg.Sim, experiment.WithLogger(logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sc.Name != "" {
				fmt.Fprintf(out, "%s", sc.Name)
				if sc.Description != "" {
					fmt.Fprintf(out, ": %s", sc.Description)
				}
				fmt.Fprint(out, "\n\n")
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tMOTION\tSTEPS\tTIME\tCOMPLETED\tMETRICS")
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(w, "%s\t-\t-\t-\t-\terror: %v\n", r.Name, r.Err)
					continue
				}
				res := r.Result
				fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%t\t%s\n",
					r.Name, res.Params.Motion, res.Steps(), res.Final.Time, res.Completed, formatMetrics(res.Metrics))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenario steps failed", failed, len(results))
			}
			return nil
		},
	}
}

func formatMetrics(m map[string]float64) string {
	parts := make([]string, 0, len(m))
	for _, name := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%.3f", name, m[name]))
	}
	return strings.Join(parts, " ")
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "analyze [motion]",
		Short:     "frequency analysis of a run",
		Long:      "Measures the dominant period of x(t) for springs and y(t) otherwise, and plots the power spectrum.",
		Args:      motionArgs,
		ValidArgs: motionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExperiment(cmd, args[0])
			if err != nil {
				return err
			}

			series, label := metrics.Heights(res.Final.History), "y"
			if res.Params.Motion == dynamo.Spring {
				series, label = metrics.Positions(res.Final.History), "x"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frequency analysis: %s\n", res.RunID)
			fmt.Fprintf(out, "motion: %s, %d samples, dt %.4fs\n\n", res.Params.Motion, len(series), res.Dt)

			if len(series) >= 4 {
				ps := analysis.PowerSpectrum(series)
				graph := asciigraph.Plot(ps[:max(len(ps)/4, 2)],
					asciigraph.Height(15),
					asciigraph.Width(80),
					asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", label)),
				)
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}

			period, err := analysis.DominantPeriod(series, res.Dt)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "dominant frequency: %.3f hz\n", 1/period)
			fmt.Fprintf(out, "period: %.3f s\n", period)
			if res.Params.Motion == dynamo.Spring {
				fmt.Fprintf(out, "expected 2π√(m/k): %.3f s\n", physics.SpringMass{}.Period(res.Params))
			}
			return nil
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or write the configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cfg)
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the default configuration to a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := os.Stat(args[0]); err == nil {
					return fmt.Errorf("%s already exists", args[0])
				}
				return config.Save(args[0], config.NewDefaultConfig())
			},
		},
	)
	return configCmd
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
