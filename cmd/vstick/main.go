package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/vstick/internal/config"
	"github.com/san-kum/vstick/internal/control"
	"github.com/san-kum/vstick/internal/dynamo"
	"github.com/san-kum/vstick/internal/gui"
	"github.com/san-kum/vstick/internal/integrators"
	"github.com/san-kum/vstick/internal/metrics"
	"github.com/san-kum/vstick/internal/physics"
	"github.com/san-kum/vstick/internal/script"
	"github.com/san-kum/vstick/internal/sim"
	"github.com/san-kum/vstick/internal/stick"
	"github.com/san-kum/vstick/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Config file
	configFile string
	// Preset name
	preset string
	debug  bool

	frameRate   int
	theme       string
	windowScale float64
	outFile     string
	noPlot      bool
	drive       float64

	logFile *os.File
)

// main registers the vstick commands. With no subcommand it starts the
// terminal host.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vstick",
		Short:        "on-screen virtual joystick",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runTerminal,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use color preset")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write logs to "+logDir+"/"+logFileName)

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "run the stick in the terminal (mouse required)",
		RunE:  runTerminal,
	}
	for _, c := range []*cobra.Command{rootCmd, termCmd} {
		c.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the stick in a window (touch and mouse)",
		RunE:  runWindow,
	}
	windowCmd.Flags().Float64Var(&windowScale, "scale", config.DefaultWindowScale, "pixels per logical unit")

	replayCmd := &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "replay a scripted gesture headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the dx/dy plot")
	replayCmd.Flags().Float64Var(&drive, "drive", 0, "also drive the rover for this many seconds past the last step")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or save the effective configuration",
		RunE:  runConfig,
	}
	configCmd.Flags().StringVar(&outFile, "out", "", "write config to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available color presets",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				r := p.Stick.Resolve()
				fmt.Fprintf(out, "  %-8s stick=%s ring=%s bg=%s opacity=%s theme=%s\n",
					name, r.StickColor, r.StickBgColor, r.StickBg, r.StickOpacity, p.Theme)
			}
		},
	}

	rootCmd.AddCommand(termCmd, windowCmd, replayCmd, configCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers the config file, the preset and any flags the user set,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Changed("scale") {
		cfg.Display.WindowScale = windowScale
	}
	return cfg, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunTerminal(cfg)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg)
}

func runReplay(cmd *cobra.Command, args []string) error {
	sc, err := script.LoadScenario(args[0])
	if err != nil {
		return err
	}

	// A --config or --preset only restyles the replay; scale and timing
	// come from the scenario itself.
	if configFile != "" || preset != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sc.Options = cfg.Stick.Merge(sc.Options)
	}

	res, err := script.Run(context.Background(), sc)
	if err != nil {
		return fmt.Errorf("replay %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "%s", sc.Name)
		if sc.Description != "" {
			fmt.Fprintf(out, ": %s", sc.Description)
		}
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tAT\tKIND\tHANDLED\tMODE\tDIR\tDX\tDY\tSURFACE")
	for _, f := range res.Frames {
		fmt.Fprintf(w, "%d\t%dms\t%s\t%v\t%s\t%s\t%.1f\t%.1f\t(%.0f,%.0f)\n",
			f.Step, f.AtMs, f.Kind, f.Handled, f.Reading.Mode, f.Reading.Direction,
			f.Reading.DX, f.Reading.DY, f.Surface.X, f.Surface.Y)
	}
	w.Flush()

	if dx, dy := res.Series(); !noPlot && len(dx) > 1 {
		graph := asciigraph.PlotMany([][]float64{dx, dy},
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption("dx (red) / dy (blue) per step"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}

	if cmd.Flags().Changed("drive") {
		if err := driveRover(cmd, res); err != nil {
			return err
		}
	}

	if !res.Passed() {
		fmt.Fprintln(out)
		for _, m := range res.Mismatches {
			fmt.Fprintf(out, "FAIL %v\n", m)
		}
		return fmt.Errorf("%d expectation(s) failed", len(res.Mismatches))
	}
	return nil
}

// driveRover plays the replayed readings into the rover and reports where it
// ended up.
func driveRover(cmd *cobra.Command, res *script.Result) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.New("rk4")
	if err != nil {
		return err
	}

	rover := physics.NewRover(cfg.Rover.MaxSpeed, cfg.Rover.TurnRate)
	ctrl := control.NewStick(res.Playback(), stick.DefaultGeometry().Border(), cfg.Rover.Deadzone)
	runner := sim.New(rover, integ, ctrl)
	effort := metrics.NewEffort()
	runner.AddMetric(effort)

	duration := res.Duration() + drive
	if duration <= 0 {
		return fmt.Errorf("nothing to drive: scenario has no duration")
	}
	out, err := runner.Run(context.Background(), make(dynamo.State, rover.StateDim()), sim.Config{
		Dt:       1.0 / float64(cfg.FrameRate()),
		Duration: duration,
	})
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	speed := make([]float64, len(out.States))
	for i, x := range out.States {
		speed[i] = rover.Speed(x)
	}
	final := out.States[len(out.States)-1]

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\nrover after %.2fs: x=%.2f y=%.2f heading=%.2f effort=%.3f (drive %.3f, turn %.3f)\n",
		out.Times[len(out.Times)-1], final[0], final[1], final[2], out.Metrics[effort.Name()], effort.Drive(), effort.Turn())
	if !noPlot && len(speed) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(speed,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("rover speed"),
		))
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", outFile)
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
