// ABOUTME: User account CRUD operations.
// ABOUTME: Usernames are unique; lookups are case-sensitive.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const userColumns = `id, username, password_hash, created_at`

// CreateUser stores a new user and assigns its ID.
func (d *DB) CreateUser(u *models.User) error {
	id, err := d.insert(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(id int64) (*models.User, error) {
	u, err := scanUser(d.queryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByName retrieves a user by username.
func (d *DB) GetUserByName(username string) (*models.User, error) {
	u, err := scanUser(d.queryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

// ListUsers returns all users ordered by username.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.query(`SELECT ` + userColumns + ` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetPassword replaces the stored password hash.
func (d *DB) SetPassword(userID int64, hash string) error {
	result, err := d.exec(`UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return requireAffected(result, "user", userID)
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
