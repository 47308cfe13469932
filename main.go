// tvnav is a TV-remote navigation shell for internet radio. It runs the
// spatial navigation core of a Samsung Tizen / LG webOS / web front end in
// a terminal, with the keyboard standing in for the remote.
//
// Usage:
//
//	tvnav [flags]
//
// Flags:
//
//	-config string        Path to configuration file (default: ~/.config/tvnav/config.toml)
//	-platform string      Platform override (auto|samsung|lg|web)
//	-locale string        UI locale override, e.g. sv-SE
//	-theme-file string    Load and use a TOML theme
//	-script string        Run a remote-control script headlessly and print a report
//	-list string          List themes, locales or keys and exit
//	-metrics-addr string  Serve Prometheus metrics on this address
//	-no-color             Disable colours
//	-no-mouse             Disable mouse support
//	-verbose              Enable verbose logging
//	-version              Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/tvnav/pkg/app"
	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/metrics"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
	"gitlab.com/tinyland/lab/tvnav/pkg/script"
	"gitlab.com/tinyland/lab/tvnav/pkg/theme"
	"gitlab.com/tinyland/lab/tvnav/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		platformArg = flag.String("platform", "", "Platform override (auto|samsung|lg|web)")
		localeArg   = flag.String("locale", "", "UI locale override, e.g. sv-SE")
		themeFile   = flag.String("theme-file", "", "Load and use a TOML theme")
		scriptPath  = flag.String("script", "", "Run a remote-control script headlessly and print a report")
		listArg     = flag.String("list", "", "List themes, locales or keys and exit")
		metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
		noColor     = flag.Bool("no-color", false, "Disable colours")
		noMouse     = flag.Bool("no-mouse", false, "Disable mouse support")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tvnav %s (%s, %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *platformArg != "" {
		cfg.Platform.Kind = *platformArg
	}
	if *localeArg != "" {
		cfg.UI.Locale = *localeArg
	}
	if *metricsAddr != "" {
		cfg.Metrics.Listen = *metricsAddr
	}
	if *verbose {
		cfg.General.LogLevel = "debug"
	}
	if *themeFile != "" {
		th, err := theme.LoadFile(*themeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load theme: %v\n", err)
			os.Exit(1)
		}
		cfg.UI.Theme = th.Name
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *listArg != "" {
		if err := list(os.Stdout, *listArg, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "tvnav: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	interactive := *scriptPath == ""
	logger, closeLog, err := setupLogger(cfg.General, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var collector *metrics.Collector
	if cfg.Metrics.Listen != "" {
		collector = metrics.New()
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Listen, logger); err != nil {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
	}
	var appOpts []app.Option
	if collector != nil {
		appOpts = append(appOpts, app.WithMetrics(collector))
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if !interactive {
		os.Exit(runScript(*scriptPath, cfg, logger, appOpts))
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "tvnav: stdout is not a terminal; use -script to run headlessly")
		os.Exit(1)
	}
	if err := runTUI(ctx, cfg, logger, appOpts, !*noMouse); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "tvnav: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// setupLogger writes to the configured log file, and also to stderr unless
// the TUI owns the terminal.
func setupLogger(g config.GeneralConfig, interactive bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	var writers []io.Writer
	if !interactive {
		writers = append(writers, os.Stderr)
	}
	closeFn := func() {}
	if g.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(g.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		closeFn = func() { f.Close() }
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeFn, nil
}

func runScript(path string, cfg *config.Config, logger *slog.Logger, appOpts []app.Option) int {
	s, err := script.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	rep, err := script.Run(s, cfg, script.WithLogger(logger), script.WithOptions(appOpts...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	rep.Write(os.Stdout)
	if rep.Failed() > 0 {
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, cfg *config.Config, logger *slog.Logger, appOpts []app.Option, mouse bool) error {
	kind, err := platform.Resolve(cfg.Platform.Kind, cfg.Platform.UserAgent)
	if err != nil {
		return err
	}

	// The terminal host can always exit: the model quits the program when
	// the app reports ExitRequested.
	lc := &app.Lifecycle{}
	dev := platform.NewDevice(kind,
		platform.WithExit(func() error { return nil }),
		platform.WithLifecycle(lc),
	)

	loop := sched.NewLoop()
	appOpts = append([]app.Option{app.WithDevice(dev), app.WithLogger(logger)}, appOpts...)
	a, err := app.New(cfg, loop, time.Now, appOpts...)
	if err != nil {
		return err
	}

	var zones *zone.Manager
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx)}
	if mouse {
		zones = zone.New()
		defer zones.Close()
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	a.Start()
	defer a.Stop()

	p := tea.NewProgram(tui.New(a, lc, zones), progOpts...)
	// Send blocks until the program loop runs, so attach from a goroutine.
	go loop.Attach(func(msg any) { p.Send(msg) })

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	logger.Info("tvnav exiting", "instance", a.ID().String())
	return nil
}
