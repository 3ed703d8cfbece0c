package session

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	th "github.com/desertthunder/fanstats/internal/testing"
)

var today = time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC)

func newManager(s store.Store, clock *th.Clock, hash bool) *Manager {
	logger := shared.NewLogger(io.Discard)
	m := NewManager(ManagerOpts{Store: s, Logger: logger, Now: clock.Now, HashPasswords: hash})
	m.SetRewarder(missions.NewEngine(missions.EngineOpts{Store: s, Users: m, Logger: logger, Now: clock.Now}))
	return m
}

func TestLoginValidation(t *testing.T) {
	tc := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "empty email", email: "", password: "x", want: ErrMissingFields},
		{name: "blank email", email: "   ", password: "x", want: ErrMissingFields},
		{name: "empty password", email: "a@b.com", password: "", want: ErrMissingFields},
		{name: "missing at", email: "ab.com", password: "x", want: ErrInvalidEmail},
		{name: "missing dot", email: "a@bcom", password: "x", want: ErrInvalidEmail},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemory()
			m := newManager(s, th.NewClock(today), false)

			if _, err := m.Login(tt.email, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("Login() error = %v, want %v", err, tt.want)
			}
			if _, ok := m.CurrentUser(); ok {
				t.Error("failed login must not start a session")
			}
			if len(m.Users()) != 0 {
				t.Error("failed login must not create accounts")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("first login creates account and credits daily login", func(t *testing.T) {
		s := store.NewMemory()
		m := newManager(s, th.NewClock(today), false)

		res, err := m.Login(" a@b.com ", "x")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if !res.Created || !res.Awarded {
			t.Errorf("Login() = %+v, want created and awarded", res)
		}
		if res.User.Email != "a@b.com" || res.User.Points != 1 {
			t.Errorf("user = %+v, want a@b.com with 1 point", res.User)
		}
		if res.User.DailyMissions[DailyLoginMission] != "Thu Oct 15 2026" {
			t.Errorf("daily missions = %v", res.User.DailyMissions)
		}
		if !res.User.JoinDate.Equal(today) {
			t.Errorf("join date = %v", res.User.JoinDate)
		}

		stored, ok := m.UserByEmail("a@b.com")
		if !ok || stored.Points != 1 {
			t.Errorf("stored user = %+v, %v", stored, ok)
		}
	})

	t.Run("second login the same day awards nothing", func(t *testing.T) {
		s := store.NewMemory()
		m := newManager(s, th.NewClock(today), false)

		if _, err := m.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}
		if err := m.Logout(); err != nil {
			t.Fatal(err)
		}

		res, err := m.Login("a@b.com", "x")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if res.Created || res.Awarded || res.User.Points != 1 {
			t.Errorf("Login() = %+v, user %+v", res, res.User)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		s := store.NewMemory()
		m := newManager(s, th.NewClock(today), false)
		if _, err := m.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}
		_ = m.Logout()

		if _, err := m.Login("a@b.com", "y"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("Login() error = %v, want ErrWrongPassword", err)
		}
		if _, ok := m.CurrentUser(); ok {
			t.Error("rejected login must not start a session")
		}
	})

	t.Run("hashed passwords", func(t *testing.T) {
		s := store.NewMemory()
		m := newManager(s, th.NewClock(today), true)

		if _, err := m.Login("a@b.com", "secret"); err != nil {
			t.Fatal(err)
		}
		stored, _ := m.UserByEmail("a@b.com")
		if stored.Password == "secret" || !strings.HasPrefix(stored.Password, hashPrefix+"$2") {
			t.Errorf("expected bcrypt hash, got %q", stored.Password)
		}

		_ = m.Logout()
		if _, err := m.Login("a@b.com", "secret"); err != nil {
			t.Errorf("Login() with hashed password error = %v", err)
		}
		_ = m.Logout()
		if _, err := m.Login("a@b.com", "nope"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("Login() error = %v, want ErrWrongPassword", err)
		}
	})

	t.Run("plaintext account still works after enabling hashing", func(t *testing.T) {
		s := store.NewMemory()
		clock := th.NewClock(today)
		if _, err := newManager(s, clock, false).Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}

		m := newManager(s, clock, true)
		_ = m.Logout()
		if _, err := m.Login("a@b.com", "x"); err != nil {
			t.Errorf("Login() error = %v", err)
		}
	})

	t.Run("plaintext password shaped like a hash", func(t *testing.T) {
		for _, hash := range []bool{false, true} {
			s := store.NewMemory()
			clock := th.NewClock(today)
			if _, err := newManager(s, clock, false).Login("a@b.com", "$2a$"+strings.Repeat("x", 56)); err != nil {
				t.Fatal(err)
			}

			m := newManager(s, clock, hash)
			_ = m.Logout()
			if _, err := m.Login("a@b.com", "$2a$"+strings.Repeat("x", 56)); err != nil {
				t.Errorf("Login() with hashing=%v error = %v", hash, err)
			}
		}
	})

	t.Run("without rewarder", func(t *testing.T) {
		m := NewManager(ManagerOpts{Store: store.NewMemory(), Logger: shared.NewLogger(io.Discard)})
		res, err := m.Login("a@b.com", "x")
		if err != nil {
			t.Fatal(err)
		}
		if res.Awarded || res.User.Points != 0 {
			t.Errorf("Login() = %+v", res)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		fs := th.NewFailingStore(nil)
		fs.FailSet = true
		m := newManager(fs, th.NewClock(today), false)
		if _, err := m.Login("a@b.com", "x"); !errors.Is(err, th.ErrInjected) {
			t.Errorf("Login() error = %v", err)
		}
	})
}

func TestLogout(t *testing.T) {
	m := newManager(store.NewMemory(), th.NewClock(today), false)
	if _, err := m.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok := m.CurrentUser(); ok {
		t.Error("expected no session after logout")
	}
	if _, ok := m.UserByEmail("a@b.com"); !ok {
		t.Error("logout must keep the account")
	}
}

func TestCheckDailyLogin(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		m := newManager(store.NewMemory(), th.NewClock(today), false)
		if awarded, err := m.CheckDailyLogin(); err != nil || awarded {
			t.Errorf("CheckDailyLogin() = %v, %v", awarded, err)
		}
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		s := store.NewMemory()
		m := newManager(s, th.NewClock(today), false)
		if _, err := m.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}
		if awarded, err := m.CheckDailyLogin(); err != nil || awarded {
			t.Errorf("CheckDailyLogin() = %v, %v", awarded, err)
		}
	})

	t.Run("next day credits once", func(t *testing.T) {
		s := store.NewMemory()
		clock := th.NewClock(today)
		m := newManager(s, clock, false)
		if _, err := m.Login("a@b.com", "x"); err != nil {
			t.Fatal(err)
		}

		clock.Advance(24 * time.Hour)
		awarded, err := m.CheckDailyLogin()
		if err != nil || !awarded {
			t.Fatalf("CheckDailyLogin() = %v, %v", awarded, err)
		}
		if got := store.GetString(s, nil, store.KeyLastDailyLogin, ""); got != "Fri Oct 16 2026" {
			t.Errorf("last daily login = %q", got)
		}
		if u, _ := m.CurrentUser(); u.Points != 2 {
			t.Errorf("points = %d, want 2", u.Points)
		}

		if awarded, _ := m.CheckDailyLogin(); awarded {
			t.Error("second check the same day should not award")
		}
	})
}

func TestUsersMalformed(t *testing.T) {
	s := store.NewMemory()
	if err := s.Set(store.KeyUsers, `[{"email":"a@b.com","password":"pw","points":"oops"}]`); err != nil {
		t.Fatal(err)
	}
	m := newManager(s, th.NewClock(today), false)

	if users := m.Users(); len(users) != 0 {
		t.Fatalf("malformed account list should read as empty, got %+v", users)
	}

	res, err := m.Login("a@b.com", "other")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.Created {
		t.Error("expected a fresh account to replace the malformed list")
	}
}

func TestSaveUser(t *testing.T) {
	s := store.NewMemory()
	m := newManager(s, th.NewClock(today), false)
	if _, err := m.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}

	other, _ := m.UserByEmail("a@b.com")
	other.Email = "c@d.com"
	if err := m.SaveUser(other); err != nil {
		t.Fatal(err)
	}
	if len(m.Users()) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(m.Users()))
	}
	if u, _ := m.CurrentUser(); u.Email != "a@b.com" {
		t.Errorf("saving another user must not replace the session, got %s", u.Email)
	}
}
