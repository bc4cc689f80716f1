// ABOUTME: Community hub posts shared between all users.
// ABOUTME: Post length is measured in characters, not bytes.
package tracker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harperreed/ecoeats/internal/models"
)

// MaxPostLength caps a community post body.
const MaxPostLength = 2000

// AddPost shares a post with the community.
func (t *Tracker) AddPost(userID int64, body string) (*models.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, invalid("post is empty")
	}
	if utf8.RuneCountInString(body) > MaxPostLength {
		return nil, invalid("post is longer than %d characters", MaxPostLength)
	}

	p := models.NewPost(userID, body)
	p.CreatedAt = t.now().UTC()
	if err := t.repo.CreatePost(p); err != nil {
		return nil, fmt.Errorf("add post: %w", err)
	}
	if u, err := t.repo.GetUser(userID); err == nil {
		p.Author = u.Username
	}
	return p, nil
}

// ListPosts returns recent community posts, newest first.
func (t *Tracker) ListPosts(limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return t.repo.ListPosts(limit)
}

// LikePost adds a like and returns the new count.
func (t *Tracker) LikePost(id int64) (int, error) {
	return t.repo.LikePost(id)
}
