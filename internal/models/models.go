// package models defines the data model for the fan dashboard
package models

import (
	"time"
)

// AlbumAggregate holds streams summed over every catalog song on an album.
type AlbumAggregate struct {
	TotalStreams int64    `json:"totalStreams"`
	DailyStreams int64    `json:"dailyStreams"`
	Songs        []string `json:"songs"`
}

// ArtistAggregate holds streams summed over every catalog song by a tracked artist.
type ArtistAggregate struct {
	TotalStreams int64    `json:"totalStreams"`
	DailyStreams int64    `json:"dailyStreams"`
	Songs        []string `json:"songs"`
}

// GoalLevel is a goal-progression tier. A tier applies when the daily stream rate is at least MinDailyThreshold.
type GoalLevel struct {
	MinDailyThreshold int64  `json:"minDailyThreshold"`
	Increment         int64  `json:"increment"`
	Name              string `json:"name"`
	Color             string `json:"color"`
}

// GoalProgress is the persisted cumulative goal singleton.
type GoalProgress struct {
	CurrentGoal     int64 `json:"currentGoal"`
	CurrentProgress int64 `json:"currentProgress"`
}

// RecentGoal records a reached goal.
type RecentGoal struct {
	Amount    int64  `json:"amount"`
	Date      string `json:"date"`
	Formatted string `json:"formattedAmount"`
}

// RankingEntry is a leaderboard row.
type RankingEntry struct {
	Email             string    `json:"email"`
	Points            int       `json:"points"`
	LastUpdate        time.Time `json:"lastUpdate"`
	MissionsCompleted int       `json:"missionsCompleted"`
}

// Mission is a named action that can be credited once per calendar day.
type Mission struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// MissionStatus is a [Mission] joined with a user's completion state.
type MissionStatus struct {
	Mission
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completedDate,omitempty"`
}

// VotingResult is written by the external voting feature and names the focus song of the day.
type VotingResult struct {
	Winner string `json:"winner"`
	Votes  int    `json:"votes"`
}
