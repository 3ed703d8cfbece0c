package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/session"
	"github.com/desertthunder/fanstats/internal/shared"
)

// API serves the dashboard JSON endpoints.
type API struct {
	catalog  *catalog.Catalog
	goals    *goals.Engine
	missions *missions.Engine
	session  *session.Manager
	logger   *log.Logger
	now      func() time.Time
	mux      *http.ServeMux
}

// APIOpts contains the components served by an [API].
type APIOpts struct {
	Catalog  *catalog.Catalog
	Goals    *goals.Engine
	Missions *missions.Engine
	Session  *session.Manager
	Logger   *log.Logger
	Now      func() time.Time
}

// NewAPI creates an [API] and registers its routes.
func NewAPI(opts APIOpts) *API {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := &API{
		catalog:  opts.Catalog,
		goals:    opts.Goals,
		missions: opts.Missions,
		session:  opts.Session,
		logger:   shared.WithLogger(opts.Logger, "component", "api"),
		now:      opts.Now,
		mux:      http.NewServeMux(),
	}

	a.mux.HandleFunc("GET /api/songs", a.songs)
	a.mux.HandleFunc("GET /api/albums", a.albums)
	a.mux.HandleFunc("GET /api/artists", a.artists)
	a.mux.HandleFunc("GET /api/stats", a.stats)
	a.mux.HandleFunc("GET /api/goal", a.goal)
	a.mux.HandleFunc("GET /api/focus", a.focus)
	a.mux.HandleFunc("POST /api/focus/simulate", a.simulate)
	a.mux.HandleFunc("GET /api/ranking", a.ranking)
	a.mux.HandleFunc("GET /api/missions", a.userMissions)
	a.mux.HandleFunc("POST /api/missions/complete", a.completeMission)
	a.mux.HandleFunc("POST /api/login", a.login)
	a.mux.HandleFunc("POST /api/logout", a.logout)
	a.mux.HandleFunc("/api/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return a
}

// Routes returns the HTTP routes this handler serves.
func (a *API) Routes() []string {
	return []string{"/api/"}
}

// ServeHTTP dispatches to the endpoint handlers.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *API) songs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	state := catalog.NewSortState()
	if v := q.Get("sort"); v != "" {
		column, err := catalog.ParseColumn(v)
		if err != nil {
			a.fail(w, err)
			return
		}
		state.Column = column
	}
	dir, err := catalog.ParseDirection(q.Get("dir"))
	if err != nil {
		a.fail(w, err)
		return
	}
	state.Direction = dir

	songs := catalog.Filter(a.catalog.Load(), q.Get("q"))
	songs = catalog.Sort(songs, state.Column, state.Direction)
	a.credit(missions.SearchSong)

	writeJSON(w, http.StatusOK, map[string]any{
		"songs": catalog.Rows(songs),
		"sort":  state,
	})
}

func (a *API) albums(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.TopAlbums())
}

func (a *API) artists(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Artists())
}

func (a *API) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Stats(a.catalog.Load()))
}

func (a *API) goal(w http.ResponseWriter, _ *http.Request) {
	status, err := a.goals.Recompute(a.catalog.Load())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"recent": a.goals.RecentGoals(),
	})
}

func (a *API) focus(w http.ResponseWriter, _ *http.Request) {
	focus, err := a.catalog.Focus()
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, focus)
}

func (a *API) simulate(w http.ResponseWriter, _ *http.Request) {
	focus, err := a.catalog.VotedFocus()
	if err != nil {
		a.fail(w, err)
		return
	}
	sim := catalog.Simulate(*focus, a.now())
	a.credit(missions.UseCalculator)
	writeJSON(w, http.StatusOK, sim)
}

func (a *API) ranking(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.missions.Ranking())
}

func (a *API) userMissions(w http.ResponseWriter, _ *http.Request) {
	user, ok := a.session.CurrentUser()
	if !ok {
		a.fail(w, missions.ErrNotLoggedIn)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user.DisplayName(),
		"points":   user.Points,
		"missions": a.missions.UserMissions(),
	})
}

type completeRequest struct {
	Mission string `json:"mission"`
}

func (a *API) completeMission(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := a.missions.CompleteMission(req.Mission)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := a.session.Login(req.Email, req.Password)
	if err != nil {
		a.fail(w, err)
		return
	}

	result.User.Password = ""
	writeJSON(w, http.StatusOK, result)
}

func (a *API) logout(w http.ResponseWriter, _ *http.Request) {
	if err := a.session.Logout(); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// credit completes key for the session user, if any.
func (a *API) credit(key string) {
	if _, ok := a.session.CurrentUser(); !ok {
		return
	}
	if _, err := a.missions.CompleteMission(key); err != nil {
		a.logger.Warn("failed to credit mission", "mission", key, "error", err)
	}
}

func (a *API) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrInvalidEmail),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, models.ErrInvalidSong):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrWrongPassword),
		errors.Is(err, missions.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, missions.ErrUnknownMission),
		errors.Is(err, catalog.ErrNoFocusSong):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
