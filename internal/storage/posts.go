// ABOUTME: Community post operations.
// ABOUTME: Posts are visible to every user; the author name is joined on read.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/ecoeats/internal/models"
)

const postSelect = `
	SELECT p.id, p.user_id, COALESCE(u.username, ''), p.post, p.likes, p.date
	FROM community_posts p
	LEFT JOIN users u ON u.id = p.user_id`

// CreatePost stores a new community post and assigns its ID.
func (d *DB) CreatePost(p *models.Post) error {
	id, err := d.insert(`
		INSERT INTO community_posts (user_id, post, likes, date)
		VALUES (?, ?, ?, ?)`,
		p.UserID, p.Body, p.Likes, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	p.ID = id
	return nil
}

// GetPost retrieves a post by ID.
func (d *DB) GetPost(id int64) (*models.Post, error) {
	p, err := scanPost(d.queryRow(postSelect+` WHERE p.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

// ListPosts retrieves the community feed, newest first.
func (d *DB) ListPosts(limit int) ([]*models.Post, error) {
	query, args := limitClause(postSelect+` ORDER BY p.date DESC, p.id DESC`, nil, limit)
	return d.listPosts(query, args...)
}

// LikePost increments a post's like counter and returns the new count.
func (d *DB) LikePost(id int64) (int, error) {
	var likes int
	err := d.queryRow(`UPDATE community_posts SET likes = likes + 1 WHERE id = ? RETURNING likes`, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return 0, fmt.Errorf("like post: %w", err)
	}
	return likes, nil
}

func (d *DB) allPosts() ([]*models.Post, error) {
	return d.listPosts(postSelect + ` ORDER BY p.id`)
}

func (d *DB) listPosts(query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(row scanner) (*models.Post, error) {
	var p models.Post
	var createdAt string
	if err := row.Scan(&p.ID, &p.UserID, &p.Author, &p.Body, &p.Likes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
