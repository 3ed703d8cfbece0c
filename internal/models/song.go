package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSong is wrapped by every song validation failure.
var ErrInvalidSong = errors.New("invalid song")

// Song is a tracked track and its stream goals.
//
// TotalStreams ≤ Goal is checked at the data-entry boundary only; stored catalogs may violate it.
type Song struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Album        string `json:"album" validate:"required"`
	Artist       string `json:"artist" validate:"required"`
	TotalStreams int64  `json:"totalStreams" validate:"gte=0,ltefield=Goal"`
	DailyStreams int64  `json:"dailyStreams" validate:"gte=0"`
	Goal         int64  `json:"goal" validate:"gt=0"`
	DailyGoal    int64  `json:"dailyGoal" validate:"gt=0"`
}

var songMessages = map[string]string{
	"Song.ID.required":           "is required",
	"Song.Name.required":         "is required",
	"Song.Album.required":        "is required",
	"Song.Artist.required":       "is required",
	"Song.TotalStreams.gte":      "must not be negative",
	"Song.TotalStreams.ltefield": "must not exceed goal",
	"Song.DailyStreams.gte":      "must not be negative",
	"Song.Goal.gt":               "must be a positive number",
	"Song.DailyGoal.gt":          "must be a positive number",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func songValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes one invalid field of a [Song].
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a song.
type ValidationError struct {
	Song   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Message)
	}
	name := e.Song
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidSong, name, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSong }

// Validate checks the song's field constraints and returns a [*ValidationError] on failure.
func (s Song) Validate() error {
	err := songValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSong, err)
	}

	verr := &ValidationError{Song: s.Name}
	for _, fe := range fieldErrs {
		msg, ok := songMessages[fe.StructNamespace()+"."+fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		verr.Fields = append(verr.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return verr
}

// ValidateSongs validates every song and joins the failures.
func ValidateSongs(songs []Song) error {
	var errs []error
	for _, s := range songs {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
