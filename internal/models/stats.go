// ABOUTME: Per-user streak statistics and achievement ladder.
// ABOUTME: Streaks count consecutive days with a check-in.
package models

import "time"

// UserStats holds the check-in streak for a user.
type UserStats struct {
	UserID    int64     `json:"user_id"`
	LastLogin time.Time `json:"last_login"`
	Streak    int       `json:"streak"`
}

// Achievement is a title earned by reaching a streak length.
type Achievement struct {
	MinDays int    `json:"min_days"`
	Emoji   string `json:"emoji"`
	Title   string `json:"title"`
}

// String renders the achievement with its emoji.
func (a Achievement) String() string {
	return a.Emoji + " " + a.Title
}

// Achievements is ordered from the longest streak down.
var Achievements = []Achievement{
	{MinDays: 30, Emoji: "🏆", Title: "Eco Warrior"},
	{MinDays: 20, Emoji: "🌟", Title: "Sustainability Star"},
	{MinDays: 10, Emoji: "🌱", Title: "Green Enthusiast"},
	{MinDays: 5, Emoji: "🍃", Title: "Eco Novice"},
	{MinDays: 0, Emoji: "🌾", Title: "Beginner"},
}

// AchievementFor returns the highest achievement reached by streak.
func AchievementFor(streak int) Achievement {
	for _, a := range Achievements {
		if streak >= a.MinDays {
			return a
		}
	}
	return Achievements[len(Achievements)-1]
}

// NextStreak applies the check-in rule for a login on today.
// It returns the new streak and whether the stats changed.
func NextStreak(stats *UserStats, today time.Time) (int, bool) {
	if stats == nil {
		return 1, true
	}
	gap := DaysBetween(stats.LastLogin, today)
	switch {
	case gap == 1:
		return stats.Streak + 1, true
	case gap > 1:
		return 1, true
	default:
		return stats.Streak, false
	}
}
