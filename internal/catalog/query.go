package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
)

const (
	// Unreachable is returned by [DaysToGoal] when a song has no daily streams.
	Unreachable = 9999

	// DisplayCapDays is the largest day count shown as a number.
	DisplayCapDays = 365

	DefaultDailyGoal = 100_000
)

// Column identifies a sortable table column.
type Column string

const (
	ColumnName         Column = "name"
	ColumnAlbum        Column = "album"
	ColumnArtist       Column = "artist"
	ColumnTotalStreams Column = "total"
	ColumnDailyStreams Column = "daily"
	ColumnGoal         Column = "goal"
	ColumnDaysToGoal   Column = "days"
	ColumnProgress     Column = "progress"
)

// Columns lists the table columns in display order.
var Columns = []Column{
	ColumnName, ColumnAlbum, ColumnArtist, ColumnTotalStreams,
	ColumnDailyStreams, ColumnGoal, ColumnDaysToGoal, ColumnProgress,
}

// ParseColumn accepts a column name such as "daily".
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Columns, c) {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown column %q", shared.ErrInvalidArgument, s)
}

// Numeric reports whether the column compares as a number.
func (c Column) Numeric() bool {
	switch c {
	case ColumnName, ColumnAlbum, ColumnArtist:
		return false
	}
	return true
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc" or "desc"; empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("%w: unknown sort direction %q", shared.ErrInvalidArgument, s)
}

// SortState tracks the active sort column and direction of a table.
type SortState struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// NewSortState starts sorted by name, ascending.
func NewSortState() SortState {
	return SortState{Column: ColumnName, Direction: Ascending}
}

// Toggle flips the direction when column is already active, otherwise selects column ascending.
func (s SortState) Toggle(column Column) SortState {
	if s.Column == column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return SortState{Column: column, Direction: Ascending}
}

// Filter returns the songs whose name, album or artist contains term, case-insensitively.
//
// An empty term returns every song in its original order.
func Filter(songs []models.Song, term string) []models.Song {
	if term == "" {
		return slices.Clone(songs)
	}

	term = strings.ToLower(term)
	var filtered []models.Song
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Album), term) ||
			strings.Contains(strings.ToLower(s.Artist), term) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Sort returns a copy of songs ordered by column.
func Sort(songs []models.Song, column Column, dir Direction) []models.Song {
	sorted := slices.Clone(songs)
	slices.SortStableFunc(sorted, func(a, b models.Song) int {
		var c int
		if column.Numeric() {
			c = cmp.Compare(numericValue(a, column), numericValue(b, column))
		} else {
			c = cmp.Compare(strings.ToLower(textValue(a, column)), strings.ToLower(textValue(b, column)))
		}
		if dir == Descending {
			return -c
		}
		return c
	})
	return sorted
}

func numericValue(s models.Song, column Column) int64 {
	switch column {
	case ColumnTotalStreams:
		return s.TotalStreams
	case ColumnDailyStreams:
		return s.DailyStreams
	case ColumnGoal:
		return s.Goal
	case ColumnDaysToGoal:
		return DaysToGoal(s)
	case ColumnProgress:
		return int64(goals.ProgressPercent(s.TotalStreams, s.Goal))
	}
	return 0
}

func textValue(s models.Song, column Column) string {
	switch column {
	case ColumnAlbum:
		return s.Album
	case ColumnArtist:
		return s.Artist
	}
	return s.Name
}

// DaysToGoal is ceil((goal-total)/daily), at least 1, or [Unreachable] when daily ≤ 0.
func DaysToGoal(s models.Song) int64 {
	if s.DailyStreams <= 0 {
		return Unreachable
	}
	days := int64(math.Ceil(float64(s.Goal-s.TotalStreams) / float64(s.DailyStreams)))
	return max(1, days)
}

// DaysLabel renders a day count, capping anything over a year.
func DaysLabel(days int64) string {
	if days > DisplayCapDays {
		return ">1 year"
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Row is a song with its derived display values.
type Row struct {
	models.Song
	DaysToGoal int64  `json:"daysToGoal"`
	DaysLabel  string `json:"daysLabel"`
	Progress   int    `json:"progress"`
	Highlight  bool   `json:"highlight"`
	Warning    bool   `json:"warning"`
}

// HighlightDailyStreams marks songs streaming strongly today.
const HighlightDailyStreams = 50_000

// WarningDays marks songs close to their goal.
const WarningDays = 30

// Rows derives display rows for songs.
func Rows(songs []models.Song) []Row {
	rows := make([]Row, len(songs))
	for i, s := range songs {
		days := DaysToGoal(s)
		rows[i] = Row{
			Song:       s,
			DaysToGoal: days,
			DaysLabel:  DaysLabel(days),
			Progress:   goals.ProgressPercent(s.TotalStreams, s.Goal),
			Highlight:  s.DailyStreams > HighlightDailyStreams,
			Warning:    days < WarningDays,
		}
	}
	return rows
}
