package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/roomflow/internal/config"
	"github.com/san-kum/roomflow/internal/dataset"
	"github.com/san-kum/roomflow/internal/gui"
	"github.com/san-kum/roomflow/internal/logging"
	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/room"
	"github.com/san-kum/roomflow/internal/scene"
	"github.com/san-kum/roomflow/internal/tui"
)

var (
	configFile string
	preset     string
	assetRef   string
	dataRef    string
	seed       int64
	interval   time.Duration
	logLevel   string
	logFile    string
	frameRate  int
	watchFor   time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. Every call resets the flag
// variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "roomflow",
		Short:        "room air-flow visualizer driven by a recorded simulation",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&assetRef, "asset", config.DefaultAsset, "3D asset path or URL (glTF/GLB)")
	pf.StringVar(&dataRef, "data", config.DefaultDataset, "simulation dataset path or URL (CSV)")
	pf.Int64Var(&seed, "seed", 0, "particle random seed (0 = time based)")
	pf.DurationVar(&interval, "interval", config.DefaultUpdateInterval, "time between dataset rows")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3D viewer",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the viewer in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "play the dataset headless and print each row",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "stop after this long (0 = until interrupted)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [asset]",
		Short: "list the meshes of an asset and their anchor roles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectAsset,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [dataset]",
		Short: "plot the dataset series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotDataset,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTERVAL\tAC\tWINDOW")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%v\t%d\t%d\n", name, p.UpdateInterval, p.Emitters.AC.Count, p.Emitters.Window.Count)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, liveCmd, watchCmd, inspectCmd, plotCmd, presetsCmd, initCmd)
	return rootCmd
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("asset") {
		cfg.Asset = assetRef
	}
	if flags.Changed("data") {
		cfg.Dataset = dataRef
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("interval") {
		cfg.UpdateInterval = interval
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to --log-file when given, otherwise to fallback.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	if logFile == "" {
		return logging.NewLogger(cfg.LogLevel, fallback), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLogger(cfg.LogLevel, f), func() { f.Close() }, nil
}

func setup(cmd *cobra.Command, logTo io.Writer) (*room.Room, *slog.Logger, func(), error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, closeLog, err := newLogger(cfg, logTo)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debug("config resolved", "asset", cfg.Asset, "dataset", cfg.Dataset, "interval", cfg.UpdateInterval)
	r := room.New(cfg, readout.NewPanel(), nil, log)
	return r, log, closeLog, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	r, log, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	gui.Run(cmd.Context(), r, log)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	// stderr would tear the alternate screen
	r, log, closeLog, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := r.Load(ctx); err != nil {
			log.Debug("room load ended", "err", err)
		}
	}()
	defer r.Close()

	return tui.Run(r, nil, r.Config().Window.FPS)
}

func runWatch(cmd *cobra.Command, args []string) error {
	r, _, closeLog, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	defer r.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	if err := r.Load(ctx); err != nil {
		return err
	}
	err = tui.Watch(ctx, r, nil, time.Second/time.Duration(r.Config().Window.FPS), os.Stdout)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func inspectAsset(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ref := cfg.Asset
	if len(args) > 0 {
		ref = args[0]
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := scene.Load(cmd.Context(), ref, nil, log)
	if err != nil {
		return err
	}
	anchors, anchorErr := scene.Bootstrap(s)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROLE\tMIN\tMAX\tDRACO")
	for _, n := range s.Meshes() {
		b := n.WorldBounds()
		role := scene.Role(n.Name)
		if role == "" {
			role = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", n.Name, role, fmtVec(b.Min), fmtVec(b.Max), n.Mesh.Compressed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nscene bounds: %s .. %s\n", fmtVec(s.Bounds().Min), fmtVec(s.Bounds().Max))
	if anchorErr != nil {
		fmt.Printf("anchors: %v\n", anchorErr)
		return nil
	}
	fmt.Printf("anchors: ac=%s window=%s\n", anchors.AC.Name, anchors.Window.Name)
	return nil
}

func fmtVec(v [3]float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

func plotDataset(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ref := cfg.Dataset
	if len(args) > 0 {
		ref = args[0]
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seq := dataset.Load(cmd.Context(), ref, log)
	fmt.Printf("%d rows, one every %v (%v per cycle)\n\n", seq.Len(), cfg.UpdateInterval,
		time.Duration(seq.Len())*cfg.UpdateInterval)

	series := []struct {
		caption string
		data    []float64
	}{
		{"Temperature (°C)", seq.TemperatureSeries()},
		{"Airflow Speed (m/s)", seq.Series(dataset.FieldAirflowSpeed)},
		{"AC State", seq.Series(dataset.FieldACState)},
		{"Window State", seq.Series(dataset.FieldWindowState)},
	}
	for _, s := range series {
		data := s.data
		if len(data) == 1 {
			data = []float64{data[0], data[0]}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}
