package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestFormatNumber(t *testing.T) {
	tc := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "0"},
		{name: "below thousand", in: 999, want: "999"},
		{name: "thousands", in: 125000, want: "125.0K"},
		{name: "millions", in: 198951352, want: "199.0M"},
		{name: "exactly a million", in: 1000000, want: "1.0M"},
		{name: "fractional thousand", in: 1500, want: "1.5K"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%d) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	day := time.Date(2026, time.October, 15, 23, 59, 0, 0, time.UTC)
	if got := DateString(day); got != "Thu Oct 15 2026" {
		t.Errorf("DateString() = %v, want Thu Oct 15 2026", got)
	}

	if DateString(day) != DateString(day.Add(-23*time.Hour)) {
		t.Error("expected same calendar day to format identically")
	}

	if DateString(day) == DateString(day.Add(time.Minute)) {
		t.Error("expected next calendar day to format differently")
	}
}

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		WithLogger(logger, "component", "test").Info("hello")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "component=test") {
			t.Errorf("unexpected log output: %s", out)
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %s", buf.String())
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		if ParseLogLevel("debug") != log.DebugLevel {
			t.Error("expected debug level")
		}
		if ParseLogLevel("nonsense") != log.InfoLevel {
			t.Error("expected fallback to info level")
		}
		if ParseLogLevel("") != log.InfoLevel {
			t.Error("expected empty to be info level")
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "fanstats.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("to file")
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected unique non-empty ids, got %q and %q", a, b)
	}
}

func TestOpenBrowser(t *testing.T) {
	orig := getRuntime
	t.Cleanup(func() { getRuntime = orig })

	t.Run("rejects non-web URLs", func(t *testing.T) {
		for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "open.spotify.com/playlist"} {
			if err := OpenBrowser(link); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("OpenBrowser(%q) error = %v, want ErrInvalidArgument", link, err)
			}
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); !errors.Is(err, ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("platform commands", func(t *testing.T) {
		tc := map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "rundll32"}
		for rt, want := range tc {
			getRuntime = func() string { return rt }
			cmd, err := browserCommand("https://example.com")
			if err != nil {
				t.Fatalf("%s: unexpected error %v", rt, err)
			}
			if filepath.Base(cmd.Path) != want && cmd.Args[0] != want {
				t.Errorf("%s: command = %v, want %s", rt, cmd.Args, want)
			}
			if cmd.Args[len(cmd.Args)-1] != "https://example.com" {
				t.Errorf("%s: expected URL as last argument, got %v", rt, cmd.Args)
			}
		}
	})
}
