package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/session"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	store       store.Store
	catalog     *catalog.Catalog
	goals       *goals.Engine
	missions    *missions.Engine
	session     *session.Manager
	logger      *log.Logger
	output      io.Writer
	now         func() time.Time
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Store       store.Store
	Logger      *log.Logger
	Output      io.Writer
	Now         func() time.Time
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	r := &Runner{
		config:      opts.Config,
		store:       opts.Store,
		logger:      opts.Logger,
		output:      opts.Output,
		now:         opts.Now,
		openBrowser: opts.OpenBrowser,
	}
	r.wire()
	return r
}

// wire builds the dashboard components over the runner's store and logger.
func (r *Runner) wire() {
	r.catalog = catalog.NewCatalog(r.store, r.config.Dashboard, r.logger)
	r.goals = goals.NewEngine(goals.EngineOpts{
		Store:       r.store,
		Logger:      r.logger,
		Now:         r.now,
		InitialGoal: r.config.Goals.InitialGoal,
		RecentLimit: r.config.Goals.RecentLimit,
	})
	r.session = session.NewManager(session.ManagerOpts{
		Store:         r.store,
		Logger:        r.logger,
		Now:           r.now,
		HashPasswords: r.config.Auth.HashPasswords,
	})
	r.missions = missions.NewEngine(missions.EngineOpts{
		Store:       r.store,
		Users:       r.session,
		Logger:      r.logger,
		Now:         r.now,
		RankingSize: r.config.Ranking.Size,
	})
	r.session.SetRewarder(r.missions)
}

// SetLogger replaces the logger and rebuilds the components that captured the old one.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.wire()
}

// Before credits the daily login mission when a fan is still signed in from an earlier day.
func (r *Runner) Before(ctx context.Context, _ *cli.Command) (context.Context, error) {
	awarded, err := r.session.CheckDailyLogin()
	if err != nil {
		r.logger.Warn("daily login check failed", "error", err)
		return ctx, nil
	}
	if awarded {
		r.logger.Info("daily login credited")
	}
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, songsCommand, goalsCommand, missionsCommand, rankingCommand,
		loginCommand, logoutCommand, whoamiCommand, serveCommand, tuiCommand, storeCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credit completes a browsing mission for a signed-in fan. Logged-out visits are not an error.
func (r *Runner) credit(key string) {
	if _, ok := r.session.CurrentUser(); !ok {
		return
	}
	if _, err := r.missions.CompleteMission(key); err != nil {
		r.logger.Warn("failed to credit mission", "mission", key, "error", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
