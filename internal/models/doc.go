// Package models defines the entities persisted by the fan dashboard.
//
// The package contains three categories of types:
//
// 1. Catalog data: the songs being tracked and the aggregates derived from them
//   - [Song] : Stream counts and goals for a single track
//   - [AlbumAggregate] : Summed streams per album
//   - [ArtistAggregate] : Summed streams per tracked artist
//
// 2. Goal progression
//   - [GoalLevel] : One of the six fixed tiers keyed by daily streams
//   - [GoalProgress] : The cumulative goal currently being chased
//   - [RecentGoal] : A log entry for a goal that was reached
//
// 3. Fan accounts and gamification
//   - [User] : Local account with points and per-mission completion dates
//   - [RankingEntry] : Cached leaderboard row
//   - [Mission] : A once-per-day action that grants points
//
// JSON tags follow the key shapes written to the key-value store.
package models
