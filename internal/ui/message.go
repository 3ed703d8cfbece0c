package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgGoalLoaded
	MsgRankingLoaded
	MsgMissionsLoaded
	MsgMissionCompleted
	MsgSimulated
)

type goalData struct {
	status *goals.Status
	recent []models.RecentGoal
	err    error
}

type missionsData struct {
	user     *models.User
	missions []models.MissionStatus
}

type completedData struct {
	result *missions.Result
	err    error
}

type simulatedData struct {
	sim *catalog.Simulation
	err error
}

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []models.Song) Msg {
	return Msg{kind: MsgSongsLoaded, data: songs}
}

// goalLoadedMsg is the constructor for [MsgGoalLoaded]
func goalLoadedMsg(status *goals.Status, recent []models.RecentGoal, err error) Msg {
	return Msg{kind: MsgGoalLoaded, data: goalData{status: status, recent: recent, err: err}}
}

// rankingLoadedMsg is the constructor for [MsgRankingLoaded]
func rankingLoadedMsg(standings []missions.Standing) Msg {
	return Msg{kind: MsgRankingLoaded, data: standings}
}

// missionsLoadedMsg is the constructor for [MsgMissionsLoaded]
func missionsLoadedMsg(user *models.User, statuses []models.MissionStatus) Msg {
	return Msg{kind: MsgMissionsLoaded, data: missionsData{user: user, missions: statuses}}
}

// missionCompletedMsg is the constructor for [MsgMissionCompleted]
func missionCompletedMsg(result *missions.Result, err error) Msg {
	return Msg{kind: MsgMissionCompleted, data: completedData{result: result, err: err}}
}

// simulatedMsg is the constructor for [MsgSimulated]
func simulatedMsg(sim *catalog.Simulation, err error) Msg {
	return Msg{kind: MsgSimulated, data: simulatedData{sim: sim, err: err}}
}
