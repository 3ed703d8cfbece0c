package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	th "github.com/desertthunder/fanstats/internal/testing"
)

func testSongs() []models.Song {
	return []models.Song{
		{ID: "1", Name: "Wolves", Album: "Wolves", Artist: "Selena Gomez", TotalStreams: 1_200_000_000, DailyStreams: 300_000, Goal: 1_500_000_000, DailyGoal: 100_000},
		{ID: "2", Name: "Who Says", Album: "When the Sun Goes Down", Artist: "Selena Gomez & The Scene", TotalStreams: 500_000_000, DailyStreams: 0, Goal: 600_000_000, DailyGoal: 50_000},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testSongs())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Name,Album,Artist,TotalStreams,DailyStreams,Goal,DailyGoal\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Wolves,Wolves,Selena Gomez,1200000000,300000,1500000000,100000") {
			t.Errorf("CSV missing first song, got: %s", output)
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("expected 3 lines (header + 2 songs), got %d", len(lines))
		}
	})

	t.Run("ExportToCSV empty", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected header only, got %q", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Catalog", catalog.Rows(testSongs()))
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Catalog",
			"**Songs**: 2",
			"**Total streams**: 1700.0M",
			"| Wolves | Wolves | Selena Gomez | 1200.0M | 300.0K | 1500.0M | >1 year | 80% |",
			"| Who Says |",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(catalog.Rows(testSongs()))
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Songs: 2") {
			t.Errorf("text missing song count")
		}
		if !strings.Contains(output, "1. Selena Gomez - Wolves (Wolves)") {
			t.Errorf("text missing first song, got:\n%s", output)
		}
	})

	t.Run("Export dispatches by format", func(t *testing.T) {
		for _, f := range []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON} {
			data, err := Export(f, testSongs())
			if err != nil {
				t.Errorf("Export(%s) error = %v", f, err)
			}
			if !strings.Contains(string(data), "Wolves") {
				t.Errorf("Export(%s) missing song", f)
			}
		}
		if _, err := Export("xml", testSongs()); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Export(xml) error = %v", err)
		}
	})

	t.Run("RankingToMarkdown", func(t *testing.T) {
		data, err := RankingToMarkdown([]missions.Standing{
			{Position: 1, Name: "a", Medal: "🥇", Points: 9, MissionsCompleted: 3, LastUpdate: time.Now()},
			{Position: 4, Name: "d", Points: 1},
		})
		if err != nil {
			t.Fatal(err)
		}
		output := string(data)
		if !strings.Contains(output, "| 1 🥇 | a | 9 | 3 |") || !strings.Contains(output, "| 4 | d | 1 | 0 |") {
			t.Errorf("unexpected ranking markdown:\n%s", output)
		}

		empty, _ := RankingToMarkdown(nil)
		if !strings.Contains(string(empty), "No fans ranked yet") {
			t.Errorf("expected empty message, got %q", empty)
		}
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data, err := ExportToCSV(testSongs())
		if err != nil {
			t.Fatal(err)
		}

		songs, err := ParseCSV(strings.NewReader(string(data)), 100_000)
		if err != nil {
			t.Fatalf("ParseCSV() error = %v", err)
		}
		if len(songs) != 2 || songs[0] != testSongs()[0] || songs[1] != testSongs()[1] {
			t.Errorf("ParseCSV() = %+v", songs)
		}
	})

	t.Run("aliases separators and defaults", func(t *testing.T) {
		input := "Title,Artist,Album,Streams,Daily,Goal,Notes\n" +
			"Hands to Myself,Selena Gomez,Revival,\"900,000,000\",250_000,1000000000,ignored\n" +
			",,,,,,\n"

		songs, err := ParseCSV(strings.NewReader(input), 75_000)
		if err != nil {
			t.Fatalf("ParseCSV() error = %v", err)
		}
		if len(songs) != 1 {
			t.Fatalf("expected blank row to be skipped, got %d songs", len(songs))
		}

		s := songs[0]
		if s.Name != "Hands to Myself" || s.TotalStreams != 900_000_000 || s.DailyStreams != 250_000 {
			t.Errorf("song = %+v", s)
		}
		if s.DailyGoal != 75_000 {
			t.Errorf("DailyGoal = %d, want default 75000", s.DailyGoal)
		}
		if s.ID != "" {
			t.Errorf("ID should be left for the catalog to assign, got %q", s.ID)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
		}{
			{name: "empty", input: ""},
			{name: "unknown headers", input: "foo,bar\n1,2\n"},
			{name: "bad number", input: "Name,Goal\nWolves,lots\n"},
			{name: "bad quoting", input: "Name,Goal\n\"Wolves,1\n"},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := ParseCSV(strings.NewReader(tt.input), 1); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("ParseCSV() error = %v, want ErrInvalidInput", err)
				}
			})
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := map[string]Format{"csv": FormatCSV, ".md": FormatMarkdown, "Markdown": FormatMarkdown, "txt": FormatText, "": FormatText, "json": FormatJSON}
	for in, want := range tc {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	if err := WriteExport([]byte("ID\n"), path); err != nil {
		t.Fatalf("WriteExport() error = %v", err)
	}
	th.AssertFileExists(t, path)
	if got := th.MustReadFile(t, path); got != "ID\n" {
		t.Errorf("file content = %q", got)
	}

	if err := WriteExport(nil, ""); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("WriteExport() error = %v", err)
	}
	if err := WriteExport(nil, filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
