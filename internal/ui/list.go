package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
)

var (
	_ list.Item = standingItem{}
	_ list.Item = missionItem{}
)

// standingItem wraps [missions.Standing] to implement [list.Item].
type standingItem struct {
	standing missions.Standing
}

func (i standingItem) FilterValue() string { return i.standing.Name }
func (i standingItem) Title() string {
	title := fmt.Sprintf("%d. %s", i.standing.Position, i.standing.Name)
	if i.standing.Medal != "" {
		title = fmt.Sprintf("%s %s", title, i.standing.Medal)
	}
	return title
}
func (i standingItem) Description() string {
	return fmt.Sprintf("%d points • %d missions", i.standing.Points, i.standing.MissionsCompleted)
}

// missionItem wraps [models.MissionStatus] to implement [list.Item].
type missionItem struct {
	mission models.MissionStatus
}

func (i missionItem) FilterValue() string { return i.mission.Name }
func (i missionItem) Title() string {
	mark := "○"
	if i.mission.Completed {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s (+%d)", mark, i.mission.Name, i.mission.Points)
}
func (i missionItem) Description() string {
	if i.mission.CompletedDate != "" && !i.mission.Completed {
		return fmt.Sprintf("%s • last done %s", i.mission.Description, i.mission.CompletedDate)
	}
	return i.mission.Description
}

func standingItems(standings []missions.Standing) []list.Item {
	items := make([]list.Item, len(standings))
	for i, s := range standings {
		items[i] = standingItem{standing: s}
	}
	return items
}

func missionItems(statuses []models.MissionStatus) []list.Item {
	items := make([]list.Item, len(statuses))
	for i, m := range statuses {
		items[i] = missionItem{mission: m}
	}
	return items
}

func recentGoalLine(g models.RecentGoal) string {
	formatted := g.Formatted
	if formatted == "" {
		formatted = shared.FormatNumber(g.Amount)
	}
	return fmt.Sprintf("%s streams • %s", formatted, g.Date)
}
