// ABOUTME: Read-only aggregate queries for dashboards, trends and reports.
// ABOUTME: Counts and sums are computed in SQL over the user's rows.
package storage

import (
	"fmt"
	"time"
)

// Summary holds dashboard counters for one user.
type Summary struct {
	WasteItems          int `json:"waste_items"`
	WasteGrams          int `json:"waste_grams"`
	WasteMillilitres    int `json:"waste_millilitres"`
	Meals               int `json:"meals"`
	GoalsTotal          int `json:"goals_total"`
	GoalsCompleted      int `json:"goals_completed"`
	ChallengesCompleted int `json:"challenges_completed"`
	Posts               int `json:"posts"`
}

// DailyTotal is one point of a per-day series.
type DailyTotal struct {
	Day   string `json:"day"`
	Total int    `json:"total"`
}

// Summary computes the dashboard counters for a user.
func (d *DB) Summary(userID int64) (*Summary, error) {
	var s Summary
	err := d.queryRow(`
		SELECT
			(SELECT COUNT(*) FROM food_waste WHERE user_id = ?),
			(SELECT COALESCE(SUM(quantity), 0) FROM food_waste WHERE user_id = ? AND quantity_type <> 'liquid'),
			(SELECT COALESCE(SUM(quantity), 0) FROM food_waste WHERE user_id = ? AND quantity_type = 'liquid'),
			(SELECT COUNT(*) FROM meals WHERE user_id = ?),
			(SELECT COUNT(*) FROM goals WHERE user_id = ?),
			(SELECT COUNT(*) FROM goals WHERE user_id = ? AND completed = ?),
			(SELECT COUNT(*) FROM challenges WHERE user_id = ? AND completed = ?),
			(SELECT COUNT(*) FROM community_posts WHERE user_id = ?)`,
		userID, userID, userID, userID, userID, userID, true, userID, true, userID,
	).Scan(
		&s.WasteItems, &s.WasteGrams, &s.WasteMillilitres, &s.Meals,
		&s.GoalsTotal, &s.GoalsCompleted, &s.ChallengesCompleted, &s.Posts,
	)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

// DailyWaste sums waste quantities per calendar day since the given date.
func (d *DB) DailyWaste(userID int64, since time.Time) ([]DailyTotal, error) {
	return d.daily(`
		SELECT substr(date, 1, 10) AS day, COALESCE(SUM(quantity), 0)
		FROM food_waste
		WHERE user_id = ? AND date >= ?
		GROUP BY substr(date, 1, 10)
		ORDER BY day`, userID, since)
}

// DailyMeals counts meals per calendar day since the given date.
func (d *DB) DailyMeals(userID int64, since time.Time) ([]DailyTotal, error) {
	return d.daily(`
		SELECT substr(date, 1, 10) AS day, COUNT(*)
		FROM meals
		WHERE user_id = ? AND date >= ?
		GROUP BY substr(date, 1, 10)
		ORDER BY day`, userID, since)
}

func (d *DB) daily(query string, userID int64, since time.Time) ([]DailyTotal, error) {
	rows, err := d.query(query, userID, formatDate(since.UTC()))
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Day, &t.Total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
