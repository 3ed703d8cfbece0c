// package formatter converts the song catalog and the leaderboard to CSV, Markdown, plain text and JSON,
// and reads catalogs back from CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

var csvHeaders = []string{"ID", "Name", "Album", "Artist", "TotalStreams", "DailyStreams", "Goal", "DailyGoal"}

// ExportToCSV writes songs with columns: ID, Name, Album, Artist, TotalStreams, DailyStreams, Goal, DailyGoal
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range songs {
		record := []string{
			s.ID,
			s.Name,
			s.Album,
			s.Artist,
			strconv.FormatInt(s.TotalStreams, 10),
			strconv.FormatInt(s.DailyStreams, 10),
			strconv.FormatInt(s.Goal, 10),
			strconv.FormatInt(s.DailyGoal, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// canonical header mapping
var headerAliases = map[string]string{
	"id":            "id",
	"name":          "name",
	"title":         "name",
	"song":          "name",
	"album":         "album",
	"artist":        "artist",
	"totalstreams":  "total",
	"total_streams": "total",
	"total":         "total",
	"streams":       "total",
	"dailystreams":  "daily",
	"daily_streams": "daily",
	"daily":         "daily",
	"goal":          "goal",
	"dailygoal":     "daily_goal",
	"daily_goal":    "daily_goal",
}

// ParseCSV reads a catalog exported by [ExportToCSV] or any CSV with recognizable headers.
//
// Missing daily goals fall back to defaultDailyGoal. Numbers may contain "," or "_" separators.
// Blank rows are skipped. Songs are not validated here.
func ParseCSV(r io.Reader, defaultDailyGoal int64) ([]models.Song, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rawHeaders, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV headers: %v", shared.ErrInvalidInput, err)
	}

	columns := make(map[int]string)
	for i, h := range rawHeaders {
		if canonical, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			columns[i] = canonical
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: CSV has no recognizable columns", shared.ErrInvalidInput)
	}

	var songs []models.Song
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", shared.ErrInvalidInput, line, err)
		}

		var s models.Song
		for i, v := range record {
			field, ok := columns[i]
			if !ok {
				continue
			}
			val := strings.TrimSpace(v)
			if val == "" {
				continue
			}

			switch field {
			case "id":
				s.ID = val
			case "name":
				s.Name = val
			case "album":
				s.Album = val
			case "artist":
				s.Artist = val
			default:
				n, err := parseCount(val)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %s %q is not a number", shared.ErrInvalidInput, line, field, val)
				}
				switch field {
				case "total":
					s.TotalStreams = n
				case "daily":
					s.DailyStreams = n
				case "goal":
					s.Goal = n
				case "daily_goal":
					s.DailyGoal = n
				}
			}
		}

		if s.Name == "" && s.Album == "" && s.Artist == "" {
			continue
		}
		if s.DailyGoal == 0 {
			s.DailyGoal = defaultDailyGoal
		}
		songs = append(songs, s)
	}

	return songs, nil
}

func parseCount(s string) (int64, error) {
	return strconv.ParseInt(strings.NewReplacer(",", "", "_", "").Replace(s), 10, 64)
}

// ExportToMarkdown renders catalog rows as a Markdown table under title
func ExportToMarkdown(title string, rows []catalog.Row) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	stats := catalog.Stats(songsOf(rows))
	fmt.Fprintf(&buf, "**Songs**: %d\n", stats.Songs)
	fmt.Fprintf(&buf, "**Total streams**: %s\n", shared.FormatNumber(stats.TotalStreams))
	fmt.Fprintf(&buf, "**Average goal**: %s\n\n", shared.FormatNumber(stats.AverageGoal))

	buf.WriteString("| Song | Album | Artist | Total | Daily | Goal | Days to goal | Progress |\n")
	buf.WriteString("|---|---|---|---:|---:|---:|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s | %s | %s | %d%% |\n",
			escapeCell(r.Name), escapeCell(r.Album), escapeCell(r.Artist),
			shared.FormatNumber(r.TotalStreams), shared.FormatNumber(r.DailyStreams), shared.FormatNumber(r.Goal),
			r.DaysLabel, r.Progress)
	}

	return buf.Bytes(), nil
}

// ExportToText renders catalog rows one per line
func ExportToText(rows []catalog.Row) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Songs: %d\n\n", len(rows))
	for i, r := range rows {
		fmt.Fprintf(&buf, "%d. %s - %s (%s) %s/%s streams, %s to goal\n",
			i+1, r.Artist, r.Name, r.Album,
			shared.FormatNumber(r.TotalStreams), shared.FormatNumber(r.Goal), r.DaysLabel)
	}

	return buf.Bytes(), nil
}

// Export renders songs in format.
func Export(format Format, songs []models.Song) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(songs)
	case FormatMarkdown:
		return ExportToMarkdown("Song catalog", catalog.Rows(songs))
	case FormatText:
		return ExportToText(catalog.Rows(songs))
	case FormatJSON:
		return shared.MarshalJSON(songs, true)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// RankingToMarkdown renders the leaderboard as a Markdown table
func RankingToMarkdown(standings []missions.Standing) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Ranking\n\n")
	if len(standings) == 0 {
		buf.WriteString("No fans ranked yet. Log in and complete missions!\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Fan | Points | Missions |\n")
	buf.WriteString("|---:|---|---:|---:|\n")
	for _, s := range standings {
		position := strconv.Itoa(s.Position)
		if s.Medal != "" {
			position += " " + s.Medal
		}
		fmt.Fprintf(&buf, "| %s | %s | %d | %d |\n", position, escapeCell(s.Name), s.Points, s.MissionsCompleted)
	}

	return buf.Bytes(), nil
}

// WriteExport writes data to path, creating or truncating it.
func WriteExport(data []byte, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func songsOf(rows []catalog.Row) []models.Song {
	songs := make([]models.Song, len(rows))
	for i, r := range rows {
		songs[i] = r.Song
	}
	return songs
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
