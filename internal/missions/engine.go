package missions

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
)

// DefaultRankingSize bounds the leaderboard.
const DefaultRankingSize = 10

// Users gives the engine access to the session user and the user records.
type Users interface {
	CurrentUser() (*models.User, bool)
	SaveUser(user *models.User) error
}

// Result describes the outcome of crediting a mission.
type Result struct {
	Mission models.Mission `json:"mission"`
	Awarded bool           `json:"awarded"`
	Total   int            `json:"total"`
}

// Engine credits missions to the session user.
type Engine struct {
	store       store.Store
	users       Users
	logger      *log.Logger
	now         func() time.Time
	rankingSize int
}

// EngineOpts contains configuration options for creating an [Engine].
type EngineOpts struct {
	Store       store.Store
	Users       Users
	Logger      *log.Logger
	Now         func() time.Time
	RankingSize int
}

// NewEngine creates a mission [Engine].
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RankingSize <= 0 {
		opts.RankingSize = DefaultRankingSize
	}

	return &Engine{
		store:       opts.Store,
		users:       opts.Users,
		logger:      shared.WithLogger(opts.Logger, "component", "missions"),
		now:         opts.Now,
		rankingSize: opts.RankingSize,
	}
}

// CompleteMission credits mission key to the session user.
func (e *Engine) CompleteMission(key string) (*Result, error) {
	if _, ok := e.users.CurrentUser(); !ok {
		return nil, ErrNotLoggedIn
	}

	mission, ok := Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMission, key)
	}

	total, awarded, err := e.AddPoints(mission.Points, mission.Key)
	if err != nil {
		return nil, err
	}
	return &Result{Mission: mission, Awarded: awarded, Total: total}, nil
}

// AddPoints adds points to the session user unless key was already credited today.
//
// It returns the user's total and whether anything was awarded.
func (e *Engine) AddPoints(points int, key string) (int, bool, error) {
	user, ok := e.users.CurrentUser()
	if !ok {
		return 0, false, ErrNotLoggedIn
	}

	today := shared.DateString(e.now())
	if user.CompletedOn(key, today) {
		e.logger.Debug("mission already credited today", "mission", key, "user", user.Email)
		return user.Points, false, nil
	}

	if user.DailyMissions == nil {
		user.DailyMissions = map[string]string{}
	}
	user.Points += points
	user.DailyMissions[key] = today

	if err := e.users.SaveUser(user); err != nil {
		return 0, false, fmt.Errorf("failed to save user: %w", err)
	}
	if err := e.UpdateRanking(user.Email, user.Points); err != nil {
		return 0, false, err
	}

	e.logger.Info("mission credited", "mission", key, "user", user.Email, "points", points, "total", user.Points)
	return user.Points, true, nil
}

// UpdateRanking upserts email's leaderboard entry, re-sorts by points and truncates.
//
// A new entry takes its completed-missions count from the session user, whoever email belongs to.
func (e *Engine) UpdateRanking(email string, points int) error {
	ranking := e.entries()
	now := e.now()

	i := slices.IndexFunc(ranking, func(r models.RankingEntry) bool { return r.Email == email })
	if i >= 0 {
		ranking[i].Points = points
		ranking[i].LastUpdate = now
	} else {
		completed := 0
		if current, ok := e.users.CurrentUser(); ok {
			completed = len(current.DailyMissions)
		}
		ranking = append(ranking, models.RankingEntry{
			Email:             email,
			Points:            points,
			LastUpdate:        now,
			MissionsCompleted: completed,
		})
	}

	slices.SortStableFunc(ranking, func(a, b models.RankingEntry) int { return b.Points - a.Points })
	if len(ranking) > e.rankingSize {
		ranking = ranking[:e.rankingSize]
	}

	if err := store.SetJSON(e.store, store.KeyRanking, ranking); err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}

func (e *Engine) entries() []models.RankingEntry {
	var ranking []models.RankingEntry
	store.GetJSON(e.store, e.logger, store.KeyRanking, &ranking)
	return ranking
}

// Standing is a leaderboard row prepared for display.
type Standing struct {
	Position          int       `json:"position"`
	Name              string    `json:"name"`
	Medal             string    `json:"medal,omitempty"`
	Points            int       `json:"points"`
	MissionsCompleted int       `json:"missionsCompleted"`
	LastUpdate        time.Time `json:"lastUpdate"`
}

var medals = []string{"🥇", "🥈", "🥉"}

// Ranking returns the cached leaderboard with display names and medals for the top three.
func (e *Engine) Ranking() []Standing {
	ranking := e.entries()
	out := make([]Standing, len(ranking))
	for i, r := range ranking {
		out[i] = Standing{
			Position:          i + 1,
			Name:              (&models.User{Email: r.Email}).DisplayName(),
			Points:            r.Points,
			MissionsCompleted: r.MissionsCompleted,
			LastUpdate:        r.LastUpdate,
		}
		if i < len(medals) {
			out[i].Medal = medals[i]
		}
	}
	return out
}

// UserMissions lists every mission with the session user's completion state.
//
// It returns nil when nobody is logged in.
func (e *Engine) UserMissions() []models.MissionStatus {
	user, ok := e.users.CurrentUser()
	if !ok {
		return nil
	}

	today := shared.DateString(e.now())
	out := make([]models.MissionStatus, len(Catalog))
	for i, m := range Catalog {
		out[i] = models.MissionStatus{
			Mission:       m,
			Completed:     user.CompletedOn(m.Key, today),
			CompletedDate: user.DailyMissions[m.Key],
		}
	}
	return out
}

// Credit completes mission key and reports whether points were awarded.
func (e *Engine) Credit(key string) (bool, error) {
	result, err := e.CompleteMission(key)
	if err != nil {
		return false, err
	}
	return result.Awarded, nil
}
