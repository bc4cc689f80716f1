// ABOUTME: Food waste CRUD operations.
// ABOUTME: Lists omit image bytes; single-entry reads include them.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const wasteListColumns = `id, user_id, item, quantity, quantity_type, image_ref,
	(image IS NOT NULL OR image_ref <> '') AS has_image, date`

// CreateWaste stores a new food waste entry and assigns its ID.
func (d *DB) CreateWaste(w *models.WasteEntry) error {
	var image interface{}
	if len(w.Image) > 0 {
		image = w.Image
	}
	id, err := d.insert(`
		INSERT INTO food_waste (user_id, item, quantity, quantity_type, image, image_ref, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.UserID, w.Item, w.Quantity, string(w.QuantityType), image, w.ImageRef, formatTime(w.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("create waste entry: %w", err)
	}
	w.ID = id
	w.HasImage = len(w.Image) > 0 || w.ImageRef != ""
	return nil
}

// GetWaste retrieves a waste entry, including its image bytes.
func (d *DB) GetWaste(userID, id int64) (*models.WasteEntry, error) {
	row := d.queryRow(`
		SELECT `+wasteListColumns+`, image
		FROM food_waste
		WHERE id = ? AND user_id = ?`, id, userID)

	var image []byte
	w, err := scanWaste(row, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: waste entry %d", ErrNotFound, id)
		}
		return nil, err
	}
	w.Image = image
	return w, nil
}

// ListWaste retrieves a user's waste entries, most recent first.
func (d *DB) ListWaste(userID int64, limit int) ([]*models.WasteEntry, error) {
	query, args := limitClause(`
		SELECT `+wasteListColumns+`
		FROM food_waste
		WHERE user_id = ?
		ORDER BY date DESC, id DESC`, []interface{}{userID}, limit)

	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list waste: %w", err)
	}
	defer rows.Close()

	var entries []*models.WasteEntry
	for rows.Next() {
		w, err := scanWaste(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// DeleteWaste removes a waste entry.
func (d *DB) DeleteWaste(userID, id int64) error {
	result, err := d.exec(`DELETE FROM food_waste WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete waste entry: %w", err)
	}
	return requireAffected(result, "waste entry", id)
}

// allWaste returns every waste entry with image bytes, for export.
func (d *DB) allWaste() ([]*models.WasteEntry, error) {
	rows, err := d.query(`
		SELECT ` + wasteListColumns + `, image
		FROM food_waste
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list waste: %w", err)
	}
	defer rows.Close()

	var entries []*models.WasteEntry
	for rows.Next() {
		var image []byte
		w, err := scanWaste(rows, &image)
		if err != nil {
			return nil, err
		}
		w.Image = image
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

func scanWaste(row scanner, extra ...interface{}) (*models.WasteEntry, error) {
	var w models.WasteEntry
	var quantityType, loggedAt string
	dest := []interface{}{&w.ID, &w.UserID, &w.Item, &w.Quantity, &quantityType, &w.ImageRef, &w.HasImage, &loggedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan waste entry: %w", err)
	}
	w.QuantityType = models.QuantityType(quantityType)
	w.LoggedAt = parseTime(loggedAt)
	return &w, nil
}
