package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/gui"
	"github.com/san-kum/backdrop/internal/nav"
	"github.com/san-kum/backdrop/internal/server"
	"github.com/san-kum/backdrop/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	theme   string
	fps     int
	width   int
	height  int
	frames  int
	runs    int
	seed    int64
	format  string
	output  string
	addr    string
	font    string
	svgDir  string
	asJSON  bool
	fromY   float64
	toY     float64
	stepY   float64
	logFile io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backdrop",
		Short: "animated portfolio backgrounds for the terminal, a window, or the browser",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !debug {
				return nil
			}
			f, err := tea.LogToFile("backdrop.log", "backdrop")
			if err != nil {
				return err
			}
			logFile = f
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			quietLogs()
			return viz.RunInteractive(vizOptions(cfg, cfg.Effect))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".backdrop", "run store directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a named preset before the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log to backdrop.log")
	addViewFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui [effect]",
		Short: "terminal view with navigation tracking",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addViewFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window with every effect layered",
		RunE:  runGUI,
	}
	addViewFlags(guiCmd)
	addSizeFlags(guiCmd)
	guiCmd.Flags().StringVar(&font, "font", "/usr/share/fonts/liberation/LiberationMono-Regular.ttf", "font file")

	captureCmd := &cobra.Command{
		Use:   "capture [effect]",
		Short: "render frames headlessly and store their stats",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCapture,
	}
	addViewFlags(captureCmd)
	addSizeFlags(captureCmd)
	captureCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to render")
	captureCmd.Flags().StringVar(&format, "format", "gif", "output format (gif, svg)")
	captureCmd.Flags().IntVar(&runs, "runs", 1, "capture this many consecutive seeds in parallel, stats only")
	captureCmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <effect>.<format>)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list captures",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot capture stats",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgDir, "svg", "", "also write one svg chart per stat into this directory")
	plotCmd.Flags().BoolVar(&asJSON, "json", false, "print the run and its series as json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "print the active section across a range of scroll offsets",
		RunE:  printSections,
	}
	sectionsCmd.Flags().Float64Var(&fromY, "from", 0, "first scroll offset")
	sectionsCmd.Flags().Float64Var(&toY, "to", -1, "last scroll offset (default: page end)")
	sectionsCmd.Flags().Float64Var(&stepY, "step", 100, "offset increment")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve effect frames as svg over http",
		RunE:  runServe,
	}
	addViewFlags(serveCmd)
	addSizeFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default $"+server.AddrEnv+" or "+server.DefaultAddr+")")

	rootCmd.AddCommand(tuiCmd, guiCmd, captureCmd, listCmd, plotCmd, presetsCmd, sectionsCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "theme (dark, light)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "viewport width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "viewport height")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// quietLogs drops log output while a full-screen view owns the terminal.
func quietLogs() {
	if logFile == nil {
		log.SetOutput(io.Discard)
	}
}

func vizOptions(cfg *config.Config, effect string) viz.Options {
	return viz.Options{
		Effect: effect,
		Dark:   cfg.Dark(),
		FPS:    cfg.FPS,
		Seed:   cfg.Seed,
		FX:     cfg.Options(),
		Nav:    cfg.Nav.Config,
		Layout: cfg.Layout(),
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	effect := cfg.Effect
	if len(args) > 0 {
		effect = args[0]
	}
	quietLogs()
	return viz.Run(vizOptions(cfg, effect))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FPS:      cfg.FPS,
		Dark:     cfg.Dark(),
		Seed:     cfg.Seed,
		FontPath: font,
		FX:       cfg.Options(),
		Nav:      cfg.Nav.Config,
		Layout:   cfg.Layout(),
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return server.Run(cmd.Context(), server.Addr(addr), server.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Dark:   cfg.Dark(),
		Seed:   cfg.Seed,
		FX:     cfg.Options(),
		Nav:    cfg.Nav.Config,
		Order:  cfg.Order(),
		Layout: cfg.Layout(),
	})
}

func printSections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	page := nav.NewVirtualPage(cfg.Layout(), float64(cfg.Height))
	end := toY
	if end < 0 {
		end = page.MaxScroll()
	}
	return writeSections(os.Stdout, cfg, fromY, end, stepY)
}
