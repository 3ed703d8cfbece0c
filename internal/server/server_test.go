package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/session"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	th "github.com/desertthunder/fanstats/internal/testing"
)

var today = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T) (*API, *session.Manager) {
	t.Helper()

	s := store.NewMemory()
	clock := th.NewClock(today)
	logger := shared.NewLogger(io.Discard)

	sess := session.NewManager(session.ManagerOpts{Store: s, Logger: logger, Now: clock.Now})
	m := missions.NewEngine(missions.EngineOpts{Store: s, Users: sess, Logger: logger, Now: clock.Now})
	sess.SetRewarder(m)

	api := NewAPI(APIOpts{
		Catalog:  catalog.NewCatalog(s, shared.DefaultConfig().Dashboard, logger),
		Goals:    goals.NewEngine(goals.EngineOpts{Store: s, Logger: logger, Now: clock.Now}),
		Missions: m,
		Session:  sess,
		Logger:   logger,
		Now:      clock.Now,
	})
	return api, sess
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestAPI(t *testing.T) {
	t.Run("songs", func(t *testing.T) {
		api, _ := newTestAPI(t)

		rec, body := do(t, api, http.MethodGet, "/api/songs?q=rain&sort=daily&dir=desc", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		songs := body["songs"].([]any)
		if len(songs) != 1 {
			t.Fatalf("expected 1 song, got %d", len(songs))
		}
		row := songs[0].(map[string]any)
		if row["daysToGoal"].(float64) != 9 || row["progress"].(float64) != 99 {
			t.Errorf("row = %v", row)
		}
		sort := body["sort"].(map[string]any)
		if sort["column"] != "daily" || sort["direction"] != "desc" {
			t.Errorf("sort = %v", sort)
		}

		rec, body = do(t, api, http.MethodGet, "/api/songs?q=zzz", "")
		if rec.Code != http.StatusOK || len(body["songs"].([]any)) != 0 {
			t.Errorf("empty filter: %d %v", rec.Code, body)
		}
	})

	t.Run("songs rejects unknown sort", func(t *testing.T) {
		api, _ := newTestAPI(t)
		for _, path := range []string{"/api/songs?sort=bogus", "/api/songs?dir=sideways"} {
			if rec, body := do(t, api, http.MethodGet, path, ""); rec.Code != http.StatusBadRequest || body["error"] == nil {
				t.Errorf("%s: status = %d, body %v", path, rec.Code, body)
			}
		}
	})

	t.Run("songs credits search mission", func(t *testing.T) {
		api, sess := newTestAPI(t)
		if _, err := sess.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}
		do(t, api, http.MethodGet, "/api/songs", "")
		if u, _ := sess.CurrentUser(); u.Points != 2 {
			t.Errorf("points = %d, want 2", u.Points)
		}
	})

	t.Run("login", func(t *testing.T) {
		api, _ := newTestAPI(t)

		rec, body := do(t, api, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"x"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		user := body["user"].(map[string]any)
		if user["email"] != "a@b.com" || user["points"].(float64) != 1 || user["password"] != "" {
			t.Errorf("user = %v", user)
		}
		if body["created"] != true || body["awarded"] != true {
			t.Errorf("body = %v", body)
		}

		do(t, api, http.MethodPost, "/api/logout", "")
		tc := []struct {
			body string
			want int
		}{
			{body: `{"email":"a@b.com","password":"y"}`, want: http.StatusUnauthorized},
			{body: `{"email":"ab.com","password":"y"}`, want: http.StatusBadRequest},
			{body: `{"email":"","password":""}`, want: http.StatusBadRequest},
			{body: `not json`, want: http.StatusBadRequest},
		}
		for _, tt := range tc {
			if rec, _ := do(t, api, http.MethodPost, "/api/login", tt.body); rec.Code != tt.want {
				t.Errorf("login %s: status = %d, want %d", tt.body, rec.Code, tt.want)
			}
		}
	})

	t.Run("missions", func(t *testing.T) {
		api, sess := newTestAPI(t)

		if rec, _ := do(t, api, http.MethodGet, "/api/missions", ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("logged out status = %d", rec.Code)
		}
		if rec, _ := do(t, api, http.MethodPost, "/api/missions/complete", `{"mission":"vote"}`); rec.Code != http.StatusUnauthorized {
			t.Errorf("logged out complete status = %d", rec.Code)
		}

		if _, err := sess.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}

		rec, body := do(t, api, http.MethodPost, "/api/missions/complete", `{"mission":"vote"}`)
		if rec.Code != http.StatusOK || body["awarded"] != true || body["total"].(float64) != 3 {
			t.Errorf("complete: %d %v", rec.Code, body)
		}
		if rec, _ := do(t, api, http.MethodPost, "/api/missions/complete", `{"mission":"bogus"}`); rec.Code != http.StatusNotFound {
			t.Errorf("unknown mission status = %d", rec.Code)
		}

		rec, body = do(t, api, http.MethodGet, "/api/missions", "")
		if rec.Code != http.StatusOK || body["user"] != "a" || len(body["missions"].([]any)) != len(missions.Catalog) {
			t.Errorf("missions: %d %v", rec.Code, body)
		}
	})

	t.Run("goal", func(t *testing.T) {
		api, _ := newTestAPI(t)
		rec, body := do(t, api, http.MethodGet, "/api/goal", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		status := body["status"].(map[string]any)
		if status["percent"].(float64) != 99 {
			t.Errorf("status = %v", status)
		}
	})

	t.Run("focus and simulate", func(t *testing.T) {
		api, _ := newTestAPI(t)

		rec, body := do(t, api, http.MethodGet, "/api/focus", "")
		if rec.Code != http.StatusOK || body["song"].(map[string]any)["name"] != "A Year Without Rain" {
			t.Errorf("focus: %d %v", rec.Code, body)
		}

		rec, body = do(t, api, http.MethodPost, "/api/focus/simulate", "")
		if rec.Code != http.StatusOK || body["reached"] != true {
			t.Errorf("simulate: %d %v", rec.Code, body)
		}
	})

	t.Run("read-only endpoints", func(t *testing.T) {
		api, _ := newTestAPI(t)
		for _, path := range []string{"/api/albums", "/api/artists", "/api/stats", "/api/ranking"} {
			if rec, _ := do(t, api, http.MethodGet, path, ""); rec.Code != http.StatusOK {
				t.Errorf("%s status = %d", path, rec.Code)
			}
			rec := httptest.NewRecorder()
			api.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("%s content type = %s", path, ct)
			}
		}
	})

	t.Run("logout", func(t *testing.T) {
		api, sess := newTestAPI(t)
		_, _ = sess.Login("a@b.com", "x")
		if rec, _ := do(t, api, http.MethodPost, "/api/logout", ""); rec.Code != http.StatusNoContent {
			t.Errorf("status = %d", rec.Code)
		}
		if _, ok := sess.CurrentUser(); ok {
			t.Error("expected session to be cleared")
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		api, _ := newTestAPI(t)
		if rec, _ := do(t, api, http.MethodGet, "/api/nope", ""); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestRouter(t *testing.T) {
	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("order = %v", order)
		}
	})

	t.Run("method filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodPost, "/submit", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submit", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("Handler registers routes", func(t *testing.T) {
		api, _ := newTestAPI(t)
		router := NewBasicRouter()
		router.Handler(api)

		if rec, _ := do(t, router, http.MethodGet, "/api/stats", ""); rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("RateLimit", func(t *testing.T) {
		h := RateLimit(0.001, 2)(ok)
		codes := []int{}
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}
		if codes[0] != http.StatusTeapot || codes[1] != http.StatusTeapot || codes[2] != http.StatusTooManyRequests {
			t.Errorf("codes = %v", codes)
		}
	})

	t.Run("RateLimit disabled", func(t *testing.T) {
		h := RateLimit(0, 0)(ok)
		for range 10 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusTeapot {
				t.Fatalf("status = %d", rec.Code)
			}
		}
	})

	t.Run("Logging", func(t *testing.T) {
		var buf bytes.Buffer
		h := Logging(shared.NewLogger(&buf))(ok)
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		if !strings.Contains(buf.String(), "/api/stats") || !strings.Contains(buf.String(), "418") {
			t.Errorf("log = %q", buf.String())
		}
	})

	t.Run("Recover", func(t *testing.T) {
		h := Recover(shared.NewLogger(io.Discard))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestServerRun(t *testing.T) {
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), shared.NewLogger(io.Discard))
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %s", srv.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
