// Package missions credits daily missions and maintains the points leaderboard.
//
// A mission pays out at most once per calendar day per user. Every payout updates the
// user's total, the user record and the bounded ranking cache.
package missions

import (
	"errors"
	"slices"

	"github.com/desertthunder/fanstats/internal/models"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrUnknownMission = errors.New("unknown mission")
)

const (
	DailyLogin     = "daily_login"
	UseCalculator  = "use_calculator"
	SearchSong     = "search_song"
	Vote           = "vote"
	ListenFocus    = "listen_focus"
	ListenPlaylist = "listen_playlist"
)

// Catalog is the fixed mission list in display order.
var Catalog = []models.Mission{
	{Key: DailyLogin, Name: "Daily login", Points: 1, Description: "Log in every day"},
	{Key: UseCalculator, Name: "Use the calculator", Points: 1, Description: "Simulate the focus song's daily goal"},
	{Key: SearchSong, Name: "Search for a song", Points: 1, Description: "Look up a song in the catalog"},
	{Key: Vote, Name: "Vote", Points: 2, Description: "Take part in the daily vote"},
	{Key: ListenFocus, Name: "Listen to the focus song", Points: 2, Description: "Stream the song of the day"},
	{Key: ListenPlaylist, Name: "Listen to the playlist", Points: 3, Description: "Stream the fan playlist"},
}

// Lookup returns the mission with the given key.
func Lookup(key string) (models.Mission, bool) {
	i := slices.IndexFunc(Catalog, func(m models.Mission) bool { return m.Key == key })
	if i < 0 {
		return models.Mission{}, false
	}
	return Catalog[i], true
}
