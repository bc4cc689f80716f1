// ABOUTME: Daily check-in streak persistence.
// ABOUTME: One user_stats row per user, written with an upsert.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

// GetUserStats returns the streak row for a user, or ErrNotFound before the first check-in.
func (d *DB) GetUserStats(userID int64) (*models.UserStats, error) {
	var s models.UserStats
	var lastLogin string
	err := d.queryRow(`SELECT user_id, last_login, streak FROM user_stats WHERE user_id = ?`, userID).
		Scan(&s.UserID, &lastLogin, &s.Streak)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: stats for user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	s.LastLogin = parseDate(lastLogin)
	return &s, nil
}

// SaveUserStats inserts or replaces the streak row for a user.
func (d *DB) SaveUserStats(s *models.UserStats) error {
	_, err := d.exec(`
		INSERT INTO user_stats (user_id, last_login, streak)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			last_login = excluded.last_login,
			streak = excluded.streak`,
		s.UserID, formatDate(s.LastLogin), s.Streak,
	)
	if err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

func (d *DB) allStats() ([]*models.UserStats, error) {
	rows, err := d.query(`SELECT user_id, last_login, streak FROM user_stats ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.UserStats
	for rows.Next() {
		var s models.UserStats
		var lastLogin string
		if err := rows.Scan(&s.UserID, &lastLogin, &s.Streak); err != nil {
			return nil, fmt.Errorf("scan user stats: %w", err)
		}
		s.LastLogin = parseDate(lastLogin)
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
