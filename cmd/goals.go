package main

import (
	"context"

	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

type goalReport struct {
	*goals.Status
	Recent []models.RecentGoal `json:"recent"`
}

// GoalsStatus prints the stored goal without recomputing it.
func (r *Runner) GoalsStatus(ctx context.Context, cmd *cli.Command) error {
	stats := catalog.Stats(r.catalog.Load())
	progress := r.goals.Progress()
	report := goalReport{
		Status: &goals.Status{
			Progress:  progress,
			Level:     goals.CurrentLevel(stats.DailyStreams),
			DailyRate: stats.DailyStreams,
			Percent:   goals.ProgressPercent(progress.CurrentProgress, progress.CurrentGoal),
		},
		Recent: r.goals.RecentGoals(),
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writeGoal(report.Status)
	if len(report.Recent) == 0 {
		r.writePlainln("No goals reached yet.")
		return nil
	}
	r.writePlainln("Recent goals:")
	for _, g := range report.Recent {
		r.writePlain("  🏆 %s on %s\n", g.Formatted, g.Date)
	}
	return nil
}

// GoalsLevels lists the goal tiers from highest to lowest.
func (r *Runner) GoalsLevels(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		return r.writeJSON(goals.Levels, cmd.Bool("pretty"))
	}

	for _, l := range goals.Levels {
		r.writePlain("%-10s ≥ %s/day, next goal +%s\n", l.Name, shared.FormatNumber(l.MinDailyThreshold), shared.FormatNumber(l.Increment))
	}
	return nil
}

// GoalsRecompute sets progress from the catalog and rolls reached goals over.
func (r *Runner) GoalsRecompute(ctx context.Context, cmd *cli.Command) error {
	status, err := r.goals.Recompute(r.catalog.Load())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	r.writeGoal(status)
	r.writeReached(status)
	return nil
}

func (r *Runner) writeGoal(status *goals.Status) {
	r.writePlainHeader("Cumulative goal")
	r.writePlain("Level: %s (%s/day)\n", status.Level.Name, shared.FormatNumber(status.DailyRate))
	r.writePlain("Progress: %s / %s (%d%%)\n",
		shared.FormatNumber(status.Progress.CurrentProgress), shared.FormatNumber(status.Progress.CurrentGoal), status.Percent)
}

func (r *Runner) writeReached(status *goals.Status) {
	for _, g := range status.Reached {
		r.writePlain("🎉 Goal reached: %s\n", g.Formatted)
	}
}
