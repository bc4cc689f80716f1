// ABOUTME: Goal CRUD operations.
// ABOUTME: Goals are created with AI recommendations and later marked complete.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const goalColumns = `id, user_id, type, goal, recommendations, potential_savings, date, completed`

// CreateGoal stores a new goal and assigns its ID.
func (d *DB) CreateGoal(g *models.Goal) error {
	id, err := d.insert(`
		INSERT INTO goals (user_id, type, goal, recommendations, potential_savings, date, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, string(g.Type), g.Goal, g.Recommendations, g.PotentialSavings, formatTime(g.CreatedAt), g.Completed,
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	g.ID = id
	return nil
}

// GetGoal retrieves a goal by ID.
func (d *DB) GetGoal(userID, id int64) (*models.Goal, error) {
	g, err := scanGoal(d.queryRow(`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %d", ErrNotFound, id)
		}
		return nil, err
	}
	return g, nil
}

// ListGoals retrieves all of a user's goals, most recent first.
func (d *DB) ListGoals(userID int64) ([]*models.Goal, error) {
	rows, err := d.query(`
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = ?
		ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	return collectGoals(rows)
}

// CompleteGoal marks a goal as completed.
func (d *DB) CompleteGoal(userID, id int64) error {
	result, err := d.exec(`UPDATE goals SET completed = ? WHERE id = ? AND user_id = ?`, true, id, userID)
	if err != nil {
		return fmt.Errorf("complete goal: %w", err)
	}
	return requireAffected(result, "goal", id)
}

func (d *DB) allGoals() ([]*models.Goal, error) {
	rows, err := d.query(`SELECT ` + goalColumns + ` FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	return collectGoals(rows)
}

func collectGoals(rows *sql.Rows) ([]*models.Goal, error) {
	var goals []*models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func scanGoal(row scanner) (*models.Goal, error) {
	var g models.Goal
	var goalType, createdAt string
	if err := row.Scan(&g.ID, &g.UserID, &goalType, &g.Goal, &g.Recommendations, &g.PotentialSavings, &createdAt, &g.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	g.Type = models.GoalType(goalType)
	g.CreatedAt = parseTime(createdAt)
	return &g, nil
}
