package goals

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
)

const (
	DefaultInitialGoal = 200_000_000
	DefaultRecentLimit = 5

	// maxRollovers bounds a single recomputation when progress jumps far past the goal.
	maxRollovers = 1000
)

// Status is the outcome of a recomputation.
type Status struct {
	Progress  models.GoalProgress `json:"progress"`
	Level     models.GoalLevel    `json:"level"`
	DailyRate int64               `json:"dailyRate"`
	Percent   int                 `json:"percent"`
	Reached   []models.RecentGoal `json:"reached,omitempty"`
}

// Engine persists the cumulative goal and the recent-goals log.
type Engine struct {
	store       store.Store
	logger      *log.Logger
	now         func() time.Time
	initialGoal int64
	recentLimit int
}

// EngineOpts contains configuration options for creating an [Engine].
type EngineOpts struct {
	Store       store.Store
	Logger      *log.Logger
	Now         func() time.Time
	InitialGoal int64
	RecentLimit int
}

// NewEngine creates a goal [Engine], filling unset options with defaults.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.InitialGoal <= 0 {
		opts.InitialGoal = DefaultInitialGoal
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	return &Engine{
		store:       opts.Store,
		logger:      shared.WithLogger(opts.Logger, "component", "goals"),
		now:         opts.Now,
		initialGoal: opts.InitialGoal,
		recentLimit: opts.RecentLimit,
	}
}

// Progress returns the persisted goal progress, or the initial goal with no progress.
func (e *Engine) Progress() models.GoalProgress {
	progress := models.GoalProgress{CurrentGoal: e.initialGoal}
	if !store.GetJSON(e.store, e.logger, store.KeyGoalProgress, &progress) || progress.CurrentGoal <= 0 {
		return models.GoalProgress{CurrentGoal: e.initialGoal}
	}
	return progress
}

// RecentGoals returns the reached-goal log, newest first.
func (e *Engine) RecentGoals() []models.RecentGoal {
	recent := []models.RecentGoal{}
	store.GetJSON(e.store, e.logger, store.KeyRecentGoals, &recent)
	return recent
}

// Recompute sets progress to the catalog's summed total streams and rolls the goal over
// until progress is below it, logging one RecentGoal per goal reached.
//
// The daily rate used to pick each increment is the catalog's summed daily streams.
func (e *Engine) Recompute(songs []models.Song) (*Status, error) {
	var total, daily int64
	for _, s := range songs {
		total += s.TotalStreams
		daily += s.DailyStreams
	}

	progress := e.Progress()
	progress.CurrentProgress = total

	var reached []models.RecentGoal
	for progress.CurrentProgress >= progress.CurrentGoal && len(reached) < maxRollovers {
		entry := models.RecentGoal{
			Amount:    progress.CurrentGoal,
			Date:      shared.DateString(e.now()),
			Formatted: shared.FormatNumber(progress.CurrentGoal),
		}
		reached = append(reached, entry)
		progress.CurrentGoal = NextGoal(progress.CurrentGoal, daily)
		e.logger.Info("goal reached", "amount", entry.Amount, "next", progress.CurrentGoal)
	}

	if len(reached) == maxRollovers {
		e.logger.Warn("rollover limit hit, goal still behind progress", "goal", progress.CurrentGoal, "progress", progress.CurrentProgress)
	}

	if err := store.SetJSON(e.store, store.KeyGoalProgress, progress); err != nil {
		return nil, fmt.Errorf("failed to save goal progress: %w", err)
	}

	if len(reached) > 0 {
		if err := e.logReached(reached); err != nil {
			return nil, err
		}
	}

	return &Status{
		Progress:  progress,
		Level:     CurrentLevel(daily),
		DailyRate: daily,
		Percent:   ProgressPercent(progress.CurrentProgress, progress.CurrentGoal),
		Reached:   reached,
	}, nil
}

// logReached prepends reached goals (oldest first in, newest ends on top) and trims the log.
func (e *Engine) logReached(reached []models.RecentGoal) error {
	recent := e.RecentGoals()
	for _, r := range reached {
		recent = append([]models.RecentGoal{r}, recent...)
	}
	if len(recent) > e.recentLimit {
		recent = recent[:e.recentLimit]
	}

	if err := store.SetJSON(e.store, store.KeyRecentGoals, recent); err != nil {
		return fmt.Errorf("failed to save recent goals: %w", err)
	}
	return nil
}
