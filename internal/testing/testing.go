// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/fanstats/internal/store"
)

// ErrInjected is returned by the failing test doubles.
var ErrInjected = errors.New("injected failure")

// FailingStore wraps a [store.Store] and fails the selected operations.
type FailingStore struct {
	store.Store
	FailGet    bool
	FailSet    bool
	FailRemove bool
}

func NewFailingStore(inner store.Store) *FailingStore {
	if inner == nil {
		inner = store.NewMemory()
	}
	return &FailingStore{Store: inner}
}

func (f *FailingStore) Get(key string) (string, bool, error) {
	if f.FailGet {
		return "", false, ErrInjected
	}
	return f.Store.Get(key)
}

func (f *FailingStore) Set(key, value string) error {
	if f.FailSet {
		return ErrInjected
	}
	return f.Store.Set(key, value)
}

func (f *FailingStore) Remove(key string) error {
	if f.FailRemove {
		return ErrInjected
	}
	return f.Store.Remove(key)
}

// Clock is a settable time source.
type Clock struct {
	t time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{t: t} }

func (c *Clock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
