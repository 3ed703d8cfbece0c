// Package ui implements an interactive terminal dashboard using bubbletea's Elm architecture.
//
// The TUI cycles (tab / shift+tab) through four views:
//  1. [SongsView] : Searchable, sortable song table with days-to-goal and progress
//  2. [GoalView] : Cumulative goal progress, current tier and recently reached goals
//  3. [RankingView] : Points leaderboard
//  4. [MissionsView] : The logged-in fan's daily missions; enter completes the selected one
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Store reads and writes run as [tea.Cmd]s and report back through that union.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
