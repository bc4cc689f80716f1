// ABOUTME: Weekly challenge CRUD operations.
// ABOUTME: Start and end are calendar dates; the latest challenge is the one ending last.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const challengeColumns = `id, user_id, challenge, start_date, end_date, progress, completed`

// CreateChallenge stores a new challenge and assigns its ID.
func (d *DB) CreateChallenge(c *models.Challenge) error {
	id, err := d.insert(`
		INSERT INTO challenges (user_id, challenge, start_date, end_date, progress, completed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Challenge, formatDate(c.StartDate), formatDate(c.EndDate), c.Progress, c.Completed,
	)
	if err != nil {
		return fmt.Errorf("create challenge: %w", err)
	}
	c.ID = id
	return nil
}

// GetChallenge retrieves a challenge by ID.
func (d *DB) GetChallenge(userID, id int64) (*models.Challenge, error) {
	c, err := scanChallenge(d.queryRow(`SELECT `+challengeColumns+` FROM challenges WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: challenge %d", ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

// LatestChallenge returns the user's challenge with the latest end date.
func (d *DB) LatestChallenge(userID int64) (*models.Challenge, error) {
	c, err := scanChallenge(d.queryRow(`
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE user_id = ?
		ORDER BY end_date DESC, id DESC
		LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no challenge for user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return c, nil
}

// ListChallenges retrieves a user's challenges, latest first.
func (d *DB) ListChallenges(userID int64, limit int) ([]*models.Challenge, error) {
	query, args := limitClause(`
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE user_id = ?
		ORDER BY end_date DESC, id DESC`, []interface{}{userID}, limit)

	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()
	return collectChallenges(rows)
}

// SetChallengeProgress records progress as a percentage, clamped to 0..100.
func (d *DB) SetChallengeProgress(userID, id int64, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	result, err := d.exec(`UPDATE challenges SET progress = ? WHERE id = ? AND user_id = ?`, progress, id, userID)
	if err != nil {
		return fmt.Errorf("set challenge progress: %w", err)
	}
	return requireAffected(result, "challenge", id)
}

// CompleteChallenge marks a challenge as completed at full progress.
func (d *DB) CompleteChallenge(userID, id int64) error {
	result, err := d.exec(`UPDATE challenges SET completed = ?, progress = 100 WHERE id = ? AND user_id = ?`, true, id, userID)
	if err != nil {
		return fmt.Errorf("complete challenge: %w", err)
	}
	return requireAffected(result, "challenge", id)
}

func (d *DB) allChallenges() ([]*models.Challenge, error) {
	rows, err := d.query(`SELECT ` + challengeColumns + ` FROM challenges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()
	return collectChallenges(rows)
}

func collectChallenges(rows *sql.Rows) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func scanChallenge(row scanner) (*models.Challenge, error) {
	var c models.Challenge
	var start, end string
	if err := row.Scan(&c.ID, &c.UserID, &c.Challenge, &start, &end, &c.Progress, &c.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan challenge: %w", err)
	}
	c.StartDate = parseDate(start)
	c.EndDate = parseDate(end)
	return &c, nil
}
