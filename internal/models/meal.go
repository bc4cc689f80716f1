// ABOUTME: Meal model for the healthy eating tracker.
// ABOUTME: Nutrition holds the generated summary for the described meal.
package models

import "time"

// Meal is one logged meal.
type Meal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"meal"`
	Nutrition   string    `json:"nutrition"`
	Quantity    *int      `json:"quantity,omitempty"`
	Image       []byte    `json:"image,omitempty"`
	ImageRef    string    `json:"image_ref,omitempty"`
	HasImage    bool      `json:"has_image"`
	LoggedAt    time.Time `json:"logged_at"`
}

// NewMeal creates a Meal logged now.
func NewMeal(userID int64, description string) *Meal {
	return &Meal{
		UserID:      userID,
		Description: description,
		LoggedAt:    time.Now(),
	}
}

// WithNutrition sets the nutrition summary.
func (m *Meal) WithNutrition(summary string) *Meal {
	m.Nutrition = summary
	return m
}

// WithQuantity sets an estimated quantity (calories).
func (m *Meal) WithQuantity(q int) *Meal {
	m.Quantity = &q
	return m
}

// WithImage attaches raw image bytes.
func (m *Meal) WithImage(data []byte) *Meal {
	m.Image = data
	m.HasImage = len(data) > 0
	return m
}

// WithLoggedAt sets a custom timestamp.
func (m *Meal) WithLoggedAt(t time.Time) *Meal {
	m.LoggedAt = t
	return m
}
