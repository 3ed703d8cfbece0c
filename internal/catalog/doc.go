// Package catalog loads, saves and queries the tracked song list.
//
// Queries are pure functions over []models.Song:
//   - [Filter] : case-insensitive substring search over name, album and artist
//   - [Sort] : column sort, numeric for stream columns, case-insensitive text otherwise
//   - [DaysToGoal] : days until a song reaches its goal at the current daily rate
//   - [Aggregate] : album and artist summaries
//   - [Stats] : catalog totals
//
// [Catalog] binds those queries to a store: it hydrates the song list (falling back to the
// built-in default), persists whole-list replacements together with freshly computed
// aggregates, and resolves the focus song chosen by the voting feature.
package catalog
