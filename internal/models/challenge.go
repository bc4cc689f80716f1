// ABOUTME: Weekly challenge model.
// ABOUTME: Challenges run for a week from their start date.
package models

import "time"

// ChallengeLength is how long a generated challenge runs.
const ChallengeLength = 7 * 24 * time.Hour

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// Challenge is a week-long sustainability challenge.
type Challenge struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Challenge string    `json:"challenge"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
}

// NewChallenge creates a challenge starting on the given day.
func NewChallenge(userID int64, text string, start time.Time) *Challenge {
	day := Day(start)
	return &Challenge{
		UserID:    userID,
		Challenge: text,
		StartDate: day,
		EndDate:   day.Add(ChallengeLength),
	}
}

// ActiveOn reports whether the challenge has not ended as of the given day.
func (c *Challenge) ActiveOn(t time.Time) bool {
	return !Day(c.EndDate).Before(Day(t))
}

// DaysRemaining returns the whole days left until the end date.
func (c *Challenge) DaysRemaining(t time.Time) int {
	return DaysBetween(Day(t), Day(c.EndDate))
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
