// Package session manages local fan accounts and the logged-in user.
//
// Logging in doubles as sign-up: an unknown email creates an account on the spot.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields = errors.New("email and password are required")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrWrongPassword = errors.New("wrong password")
)

// DailyLoginMission is credited on every login and on the first check of each day.
const DailyLoginMission = "daily_login"

// hashPrefix marks stored passwords that are bcrypt hashes. Anything else is plaintext.
const hashPrefix = "bcrypt:"

// Rewarder credits missions to the logged-in user.
type Rewarder interface {
	Credit(key string) (awarded bool, err error)
}

// RewarderFunc adapts a function to [Rewarder].
type RewarderFunc func(key string) (bool, error)

func (f RewarderFunc) Credit(key string) (bool, error) { return f(key) }

// Manager owns the user records and the session pointer.
type Manager struct {
	store    store.Store
	logger   *log.Logger
	now      func() time.Time
	hash     bool
	rewarder Rewarder
}

// ManagerOpts contains configuration options for creating a [Manager].
type ManagerOpts struct {
	Store  store.Store
	Logger *log.Logger
	Now    func() time.Time
	// HashPasswords stores bcrypt hashes instead of plaintext passwords.
	HashPasswords bool
}

// NewManager creates a session [Manager].
func NewManager(opts ManagerOpts) *Manager {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:  opts.Store,
		logger: shared.WithLogger(opts.Logger, "component", "session"),
		now:    opts.Now,
		hash:   opts.HashPasswords,
	}
}

// SetRewarder sets the mission sink used after login.
func (m *Manager) SetRewarder(r Rewarder) {
	m.rewarder = r
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
	Awarded bool         `json:"awarded"`
}

// Login authenticates email and password, creating the account when it does not exist,
// and then attempts the daily login mission.
//
// The email check only requires an "@" and a "."; it is not an address validator.
func (m *Manager) Login(email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	result := &LoginResult{}
	user, ok := m.UserByEmail(email)
	if ok {
		if !m.checkPassword(user.Password, password) {
			m.logger.Warn("login rejected", "email", email)
			return nil, ErrWrongPassword
		}
	} else {
		stored, err := m.storedPassword(password)
		if err != nil {
			return nil, err
		}
		user = models.NewUser(email, stored, m.now())
		if err := m.SaveUser(user); err != nil {
			return nil, err
		}
		result.Created = true
		m.logger.Info("account created", "email", email)
	}

	if err := store.SetJSON(m.store, store.KeyCurrentUser, user); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if m.rewarder != nil {
		awarded, err := m.rewarder.Credit(DailyLoginMission)
		if err != nil {
			return nil, err
		}
		result.Awarded = awarded
		if awarded {
			if err := m.store.Set(store.KeyLastDailyLogin, shared.DateString(m.now())); err != nil {
				return nil, fmt.Errorf("failed to record daily login: %w", err)
			}
		}
	}

	result.User, _ = m.CurrentUser()
	m.logger.Info("logged in", "email", email)
	return result, nil
}

// Logout clears the session pointer.
func (m *Manager) Logout() error {
	if err := m.store.Remove(store.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user.
func (m *Manager) CurrentUser() (*models.User, bool) {
	var user models.User
	if !store.GetJSON(m.store, m.logger, store.KeyCurrentUser, &user) || user.Email == "" {
		return nil, false
	}
	return &user, true
}

// Users returns every stored account.
func (m *Manager) Users() []models.User {
	var users []models.User
	store.GetJSON(m.store, m.logger, store.KeyUsers, &users)
	return users
}

// UserByEmail finds an account by exact email.
func (m *Manager) UserByEmail(email string) (*models.User, bool) {
	users := m.Users()
	i := slices.IndexFunc(users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return nil, false
	}
	return &users[i], true
}

// SaveUser upserts user into the account list and refreshes the session copy when user is logged in.
func (m *Manager) SaveUser(user *models.User) error {
	users := m.Users()
	if i := slices.IndexFunc(users, func(u models.User) bool { return u.Email == user.Email }); i >= 0 {
		users[i] = *user
	} else {
		users = append(users, *user)
	}

	if err := store.SetJSON(m.store, store.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	if current, ok := m.CurrentUser(); ok && current.Email == user.Email {
		if err := store.SetJSON(m.store, store.KeyCurrentUser, user); err != nil {
			return fmt.Errorf("failed to save session user: %w", err)
		}
	}
	return nil
}

// CheckDailyLogin credits the daily login mission the first time it runs on a new day with
// someone logged in. It reports whether a mission was credited.
func (m *Manager) CheckDailyLogin() (bool, error) {
	if _, ok := m.CurrentUser(); !ok || m.rewarder == nil {
		return false, nil
	}

	today := shared.DateString(m.now())
	if store.GetString(m.store, m.logger, store.KeyLastDailyLogin, "") == today {
		return false, nil
	}

	awarded, err := m.rewarder.Credit(DailyLoginMission)
	if err != nil {
		return false, err
	}
	if err := m.store.Set(store.KeyLastDailyLogin, today); err != nil {
		return false, fmt.Errorf("failed to record daily login: %w", err)
	}
	return awarded, nil
}

func (m *Manager) storedPassword(password string) (string, error) {
	if !m.hash {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hashPrefix + string(hashed), nil
}

// checkPassword compares against a prefixed bcrypt hash, or exactly against a plaintext password.
// Accounts created before hashing was enabled keep working.
func (m *Manager) checkPassword(stored, given string) bool {
	if hashed, ok := strings.CutPrefix(stored, hashPrefix); ok {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(given)) == nil
	}
	return stored == given
}
