// ABOUTME: Meal CRUD operations.
// ABOUTME: Lists omit image bytes; single-meal reads include them.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const mealListColumns = `id, user_id, meal, nutrition, quantity, image_ref,
	(image IS NOT NULL OR image_ref <> '') AS has_image, date`

// CreateMeal stores a new meal and assigns its ID.
func (d *DB) CreateMeal(m *models.Meal) error {
	var image interface{}
	if len(m.Image) > 0 {
		image = m.Image
	}
	id, err := d.insert(`
		INSERT INTO meals (user_id, meal, nutrition, quantity, image, image_ref, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Description, m.Nutrition, m.Quantity, image, m.ImageRef, formatTime(m.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	m.ID = id
	m.HasImage = len(m.Image) > 0 || m.ImageRef != ""
	return nil
}

// GetMeal retrieves a meal, including its image bytes.
func (d *DB) GetMeal(userID, id int64) (*models.Meal, error) {
	row := d.queryRow(`
		SELECT `+mealListColumns+`, image
		FROM meals
		WHERE id = ? AND user_id = ?`, id, userID)

	var image []byte
	m, err := scanMeal(row, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: meal %d", ErrNotFound, id)
		}
		return nil, err
	}
	m.Image = image
	return m, nil
}

// ListMeals retrieves a user's meals, most recent first.
func (d *DB) ListMeals(userID int64, limit int) ([]*models.Meal, error) {
	query, args := limitClause(`
		SELECT `+mealListColumns+`
		FROM meals
		WHERE user_id = ?
		ORDER BY date DESC, id DESC`, []interface{}{userID}, limit)

	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// DeleteMeal removes a meal.
func (d *DB) DeleteMeal(userID, id int64) error {
	result, err := d.exec(`DELETE FROM meals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return requireAffected(result, "meal", id)
}

// allMeals returns every meal with image bytes, for export.
func (d *DB) allMeals() ([]*models.Meal, error) {
	rows, err := d.query(`
		SELECT ` + mealListColumns + `, image
		FROM meals
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		var image []byte
		m, err := scanMeal(rows, &image)
		if err != nil {
			return nil, err
		}
		m.Image = image
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func scanMeal(row scanner, extra ...interface{}) (*models.Meal, error) {
	var m models.Meal
	var quantity sql.NullInt64
	var loggedAt string
	dest := []interface{}{&m.ID, &m.UserID, &m.Description, &m.Nutrition, &quantity, &m.ImageRef, &m.HasImage, &loggedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan meal: %w", err)
	}
	if quantity.Valid {
		q := int(quantity.Int64)
		m.Quantity = &q
	}
	m.LoggedAt = parseTime(loggedAt)
	return &m, nil
}
