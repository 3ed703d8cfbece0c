package catalog

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/store"
)

var (
	// ErrNoFocusSong is returned when the catalog is empty.
	ErrNoFocusSong = errors.New("no focus song available")
	// ErrFocusNotFound is returned by [Catalog.VotedFocus] when the voting winner is not a catalog song.
	ErrFocusNotFound = fmt.Errorf("%w: voting winner not in catalog", ErrNoFocusSong)
)

// DefaultPlaylistURL is used when neither the store nor the config names a playlist.
const DefaultPlaylistURL = "https://open.spotify.com/playlist/37i9dQZF1DX4PP3DA4J0N8"

// FocusSong is the song picked by the daily vote and its progress toward the daily goal.
type FocusSong struct {
	Song        models.Song `json:"song"`
	Votes       int         `json:"votes"`
	DailyGoal   int64       `json:"dailyGoal"`
	Needed      int64       `json:"needed"`
	PlaylistURL string      `json:"playlistUrl"`
}

// Reached reports whether today's streams already meet the daily goal.
func (f FocusSong) Reached() bool {
	return f.Needed == 0
}

// VotingResult returns the stored vote, or the configured default focus song with one vote.
func (c *Catalog) VotingResult() models.VotingResult {
	result := models.VotingResult{Winner: c.config.DefaultFocusSong, Votes: 1}
	if !store.GetJSON(c.store, c.logger, store.KeyVotingResult, &result) || result.Winner == "" {
		return models.VotingResult{Winner: c.config.DefaultFocusSong, Votes: 1}
	}
	return result
}

// PlaylistURL returns the stored playlist override or the configured playlist.
func (c *Catalog) PlaylistURL() string {
	fallback := c.config.PlaylistURL
	if fallback == "" {
		fallback = DefaultPlaylistURL
	}
	return store.GetString(c.store, c.logger, store.KeyPlaylistURL, fallback)
}

// Focus resolves the voting winner against the catalog, ignoring case and falling back to
// the first song.
func (c *Catalog) Focus() (*FocusSong, error) {
	songs := c.Load()
	if len(songs) == 0 {
		return nil, ErrNoFocusSong
	}

	vote := c.VotingResult()
	song, ok := Lookup(songs, vote.Winner)
	if !ok {
		song = songs[0]
		c.logger.Debug("voting winner not in catalog", "winner", vote.Winner, "fallback", song.Name)
	}
	return c.focusFor(song, vote), nil
}

// VotedFocus resolves the voting winner by exact name, without a fallback.
// Simulations use it so an estimate is never made for a song nobody voted for.
func (c *Catalog) VotedFocus() (*FocusSong, error) {
	songs := c.Load()
	vote := c.VotingResult()
	for _, s := range songs {
		if s.Name == vote.Winner {
			return c.focusFor(s, vote), nil
		}
	}
	if len(songs) == 0 {
		return nil, ErrNoFocusSong
	}
	return nil, fmt.Errorf("%w: %q", ErrFocusNotFound, vote.Winner)
}

func (c *Catalog) focusFor(song models.Song, vote models.VotingResult) *FocusSong {
	dailyGoal := song.DailyGoal
	if dailyGoal <= 0 {
		dailyGoal = c.config.DefaultDailyGoal
	}

	return &FocusSong{
		Song:        song,
		Votes:       vote.Votes,
		DailyGoal:   dailyGoal,
		Needed:      max(0, dailyGoal-song.DailyStreams),
		PlaylistURL: c.PlaylistURL(),
	}
}

// Simulation estimates when the focus song reaches its daily goal.
type Simulation struct {
	Song           string `json:"song"`
	Current        int64  `json:"current"`
	DailyGoal      int64  `json:"dailyGoal"`
	Needed         int64  `json:"needed"`
	AveragePerHour int64  `json:"averagePerHour"`
	HoursNeeded    int64  `json:"hoursNeeded"`
	Reached        bool   `json:"reached"`
}

// Simulate projects the remaining hours from the average hourly rate so far today.
//
// The hourly average divides today's streams by the hours elapsed including the current one.
// A zero average yields [Unreachable] hours.
func Simulate(focus FocusSong, now time.Time) Simulation {
	sim := Simulation{
		Song:      focus.Song.Name,
		Current:   focus.Song.DailyStreams,
		DailyGoal: focus.DailyGoal,
		Needed:    focus.Needed,
	}
	if focus.Reached() {
		sim.Reached = true
		return sim
	}

	sim.AveragePerHour = int64(math.Round(float64(focus.Song.DailyStreams) / float64(now.Hour()+1)))
	if sim.AveragePerHour <= 0 {
		sim.HoursNeeded = Unreachable
		return sim
	}
	sim.HoursNeeded = int64(math.Ceil(float64(sim.Needed) / float64(sim.AveragePerHour)))
	return sim
}
