package store

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"
)

// Store is a string-keyed, string-valued persistent store.
type Store interface {
	Get(key string) (value string, ok bool, err error) // Get returns the value for key and whether it exists
	Set(key, value string) error                       // Set writes value under key, replacing any previous value
	Remove(key string) error                           // Remove deletes key; removing a missing key is not an error
}

// GetJSON decodes the value at key into v, which must be a non-nil pointer.
//
// It returns false, leaving v untouched, when the key is missing, unreadable or malformed.
// The value is decoded into a fresh copy first, so a partial decode never reaches v.
// Failures are logged at debug level and never returned.
func GetJSON(s Store, logger *log.Logger, key string, v any) bool {
	raw, ok, err := s.Get(key)
	if err != nil {
		if logger != nil {
			logger.Debug("failed to read key, using default", "key", key, "error", err)
		}
		return false
	}
	if !ok || raw == "" {
		return false
	}

	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return false
	}

	tmp := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		if logger != nil {
			logger.Debug("malformed value, using default", "key", key, "error", err)
		}
		return false
	}
	dst.Elem().Set(tmp.Elem())
	return true
}

// SetJSON encodes v and writes it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetString returns the raw value at key, or fallback when it is missing or unreadable.
func GetString(s Store, logger *log.Logger, key, fallback string) string {
	raw, ok, err := s.Get(key)
	if err != nil {
		if logger != nil {
			logger.Debug("failed to read key, using default", "key", key, "error", err)
		}
		return fallback
	}
	if !ok || raw == "" {
		return fallback
	}
	return raw
}
