// ABOUTME: Community post model.
// ABOUTME: Posts are visible to every user and collect likes.
package models

import "time"

// Post is a community hub entry.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author,omitempty"`
	Body      string    `json:"post"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost creates a post with no likes.
func NewPost(userID int64, body string) *Post {
	return &Post{
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
