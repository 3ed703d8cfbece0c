package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/fanstats/internal/formatter"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

// MissionsList prints every mission, with today's state when a fan is signed in.
func (r *Runner) MissionsList(ctx context.Context, cmd *cli.Command) error {
	statuses := r.missions.UserMissions()
	user, loggedIn := r.session.CurrentUser()
	if !loggedIn {
		statuses = make([]models.MissionStatus, len(missions.Catalog))
		for i, m := range missions.Catalog {
			statuses[i] = models.MissionStatus{Mission: m}
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, cmd.Bool("pretty"))
	}

	if loggedIn {
		r.writePlain("%s has %d points\n\n", user.DisplayName(), user.Points)
	} else {
		r.writePlain("Log in to complete missions.\n\n")
	}
	for _, s := range statuses {
		check := "[ ]"
		if s.Completed {
			check = "[✓]"
		}
		r.writePlain("%s %s (+%d) %s\n", check, s.Name, s.Points, s.Key)
		r.writePlain("    %s\n", s.Description)
	}
	return nil
}

// MissionsComplete credits a mission to the signed-in fan.
func (r *Runner) MissionsComplete(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: mission key", shared.ErrMissingArgument)
	}

	result, err := r.missions.CompleteMission(key)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if result.Awarded {
		r.writePlain("✓ %s: +%d points (total %d)\n", result.Mission.Name, result.Mission.Points, result.Total)
	} else {
		r.writePlain("%s already completed today (total %d)\n", result.Mission.Name, result.Total)
	}
	return nil
}

// Ranking prints the leaderboard.
func (r *Runner) Ranking(ctx context.Context, cmd *cli.Command) error {
	standings := r.missions.Ranking()

	if cmd.Bool("json") {
		return r.writeJSON(standings, cmd.Bool("pretty"))
	}

	if cmd.Bool("markdown") {
		data, err := formatter.RankingToMarkdown(standings)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	if len(standings) == 0 {
		r.writePlain("No fans ranked yet. Log in and complete missions!\n")
		return nil
	}

	r.writePlainHeader("Ranking")
	for _, s := range standings {
		position := fmt.Sprintf("%d.", s.Position)
		if s.Medal != "" {
			position = s.Medal
		}
		r.writePlain("%-3s %-20s %4d pts  %d missions\n", position, s.Name, s.Points, s.MissionsCompleted)
	}
	return nil
}
