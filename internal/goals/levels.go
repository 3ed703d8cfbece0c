// Package goals maps daily stream rates to goal tiers and advances the cumulative goal as it is reached.
package goals

import (
	"math"

	"github.com/desertthunder/fanstats/internal/models"
)

// Levels is the fixed tier table, ordered by descending threshold. The last tier has threshold 0.
var Levels = []models.GoalLevel{
	{MinDailyThreshold: 5_000_000, Increment: 500_000_000, Name: "Legendary", Color: "#FF4FD8"},
	{MinDailyThreshold: 2_000_000, Increment: 250_000_000, Name: "Diamond", Color: "#5BC0EB"},
	{MinDailyThreshold: 1_000_000, Increment: 100_000_000, Name: "Platinum", Color: "#E5E4E2"},
	{MinDailyThreshold: 500_000, Increment: 50_000_000, Name: "Gold", Color: "#FFD700"},
	{MinDailyThreshold: 100_000, Increment: 25_000_000, Name: "Silver", Color: "#C0C0C0"},
	{MinDailyThreshold: 0, Increment: 10_000_000, Name: "Bronze", Color: "#CD7F32"},
}

// CurrentLevel returns the first tier whose threshold is at most dailyRate.
//
// Negative rates fall through to the lowest tier.
func CurrentLevel(dailyRate int64) models.GoalLevel {
	for _, level := range Levels {
		if level.MinDailyThreshold <= dailyRate {
			return level
		}
	}
	return Levels[len(Levels)-1]
}

// NextGoal is currentGoal plus the increment of the tier for dailyRate.
func NextGoal(currentGoal, dailyRate int64) int64 {
	return currentGoal + CurrentLevel(dailyRate).Increment
}

// ProgressPercent is round(current/goal*100) clamped to [0, 100].
//
// Callers must pass goal > 0; a non-positive goal yields 0.
func ProgressPercent(current, goal int64) int {
	if goal <= 0 {
		return 0
	}
	pct := math.Round(float64(current) / float64(goal) * 100)
	return int(min(max(pct, 0), 100))
}
