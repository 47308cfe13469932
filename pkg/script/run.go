package script

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/app"
	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/player"
	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
)

// Epoch is the virtual start time of every run.
var Epoch = time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

// Result is the outcome of one step.
type Result struct {
	Index int
	Step  Step
	Err   error
	// Focus and Route are the app state after the step.
	Focus string
	Route string
	At    time.Duration
}

// Report collects step results.
type Report struct {
	Name    string
	Results []Result
}

// Failed returns the number of failed steps.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Write prints one line per step and a summary.
func (r *Report) Write(w io.Writer) {
	if r.Name != "" {
		fmt.Fprintf(w, "# %s\n", r.Name)
	}
	for _, res := range r.Results {
		mark := "ok  "
		if res.Err != nil {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%s %3d  +%-8s %-28s focus=%s route=%s",
			mark, res.Index, res.At, res.Step, res.Focus, res.Route)
		if res.Err != nil {
			fmt.Fprintf(w, "  (%v)", res.Err)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d steps, %d failed\n", len(r.Results), r.Failed())
}

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger handed to the app.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithOptions passes extra options to the app, e.g. app.WithMetrics.
func WithOptions(opts ...app.Option) Option {
	return func(r *runner) { r.appOpts = append(r.appOpts, opts...) }
}

type runner struct {
	logger  *slog.Logger
	appOpts []app.Option

	app       *app.App
	clock     *sched.Manual
	lifecycle *app.Lifecycle
	exited    bool
}

// Run executes s against a fresh app configured from cfg. Failed
// expectations are recorded in the report and do not stop the run; an
// error is returned only when the app cannot be built.
func Run(s *Script, cfg *config.Config, opts ...Option) (*Report, error) {
	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = s.apply(cfg)

	kind, err := platform.Resolve(cfg.Platform.Kind, cfg.Platform.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	r.clock = sched.NewManual(Epoch)
	r.lifecycle = &app.Lifecycle{}
	dev := platform.NewDevice(kind,
		platform.WithExit(func() error { return nil }),
		platform.WithLifecycle(r.lifecycle),
	)
	appOpts := append([]app.Option{app.WithDevice(dev), app.WithLogger(r.logger)}, r.appOpts...)
	a, err := app.New(cfg, r.clock, r.clock.Now, appOpts...)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	r.app = a
	a.Subscribe(func(ev any) {
		if _, ok := ev.(app.ExitRequested); ok {
			r.exited = true
		}
	})
	a.Start()
	defer a.Stop()

	rep := &Report{Name: s.Name}
	for i, st := range s.Steps {
		err := r.step(st)
		rep.Results = append(rep.Results, Result{
			Index: i + 1,
			Step:  st,
			Err:   err,
			Focus: a.FocusedID(),
			Route: a.Route(),
			At:    r.clock.Now().Sub(Epoch),
		})
	}
	return rep, nil
}

func (r *runner) step(s Step) error {
	a := r.app
	switch {
	case s.Key != "":
		k, err := keys.ParseKey(s.Key)
		if err != nil {
			return err
		}
		for i := 0; i < max(s.Repeat, 1); i++ {
			a.Press(k)
		}
	case s.Code != nil:
		a.HandleKey(*s.Code)
	case s.Click != "":
		if !a.Click(s.Click) {
			return fmt.Errorf("nothing to click with id %q", s.Click)
		}
	case s.Route != "":
		a.Navigate(s.Route)
	case s.Back:
		a.Back()
	case s.Wait.Duration > 0:
		r.clock.Advance(s.Wait.Duration)
	case s.Lifecycle == "hidden":
		r.lifecycle.Hidden()
	case s.Lifecycle == "visible":
		r.lifecycle.Visible()
	case s.ExpectFocus != "":
		if got := a.FocusedID(); got != s.ExpectFocus {
			return fmt.Errorf("focus is %q", got)
		}
	case s.ExpectRoute != "":
		if got := a.Route(); got != s.ExpectRoute {
			return fmt.Errorf("route is %q", got)
		}
	case s.ExpectState != "":
		return r.expectState(strings.ToLower(s.ExpectState))
	}
	return nil
}

func (r *runner) expectState(want string) error {
	var got string
	switch want {
	case "idle", "active":
		got = strings.ToLower(r.app.IdleState().String())
	case "exited":
		if !r.exited {
			return fmt.Errorf("app did not exit")
		}
		return nil
	default:
		switch r.app.Player().State() {
		case player.Playing:
			got = "playing"
		case player.Paused:
			got = "paused"
		default:
			got = "stopped"
		}
	}
	if got != want {
		return fmt.Errorf("state is %s", got)
	}
	return nil
}
