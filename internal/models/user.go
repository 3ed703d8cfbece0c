package models

import (
	"strings"
	"time"
)

// User is a local fan account.
//
// Password holds the plaintext password, or a bcrypt hash prefixed with "bcrypt:" when hashing is enabled.
type User struct {
	Email         string            `json:"email"`
	Password      string            `json:"password"`
	Points        int               `json:"points"`
	DailyMissions map[string]string `json:"dailyMissions"`
	JoinDate      time.Time         `json:"joinDate"`
}

// NewUser creates a user with zero points and no mission history.
func NewUser(email, password string, joined time.Time) *User {
	return &User{
		Email:         email,
		Password:      password,
		Points:        0,
		DailyMissions: map[string]string{},
		JoinDate:      joined,
	}
}

// DisplayName is the local part of the email address.
func (u *User) DisplayName() string {
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}

// CompletedOn reports whether mission was credited on the given date string.
func (u *User) CompletedOn(mission, date string) bool {
	return u.DailyMissions != nil && u.DailyMissions[mission] == date
}
