// ABOUTME: Food waste entry model and quantity types.
// ABOUTME: Solid waste is measured in grams, liquid waste in millilitres.
package models

import (
	"strings"
	"time"
)

// QuantityType says how a waste quantity is measured.
type QuantityType string

const (
	QuantitySolid  QuantityType = "solid"
	QuantityLiquid QuantityType = "liquid"
)

// Unit returns the display unit for the quantity type.
func (q QuantityType) Unit() string {
	if q == QuantityLiquid {
		return "ml"
	}
	return "g"
}

// ParseQuantityType accepts "solid"/"liquid" as well as the unit names.
func ParseQuantityType(s string) (QuantityType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid", "g", "grams", "gram":
		return QuantitySolid, true
	case "liquid", "ml", "millilitres", "milliliters":
		return QuantityLiquid, true
	default:
		return "", false
	}
}

// WasteEntry is one logged item of wasted food.
type WasteEntry struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	Item         string       `json:"item"`
	Quantity     int          `json:"quantity"`
	QuantityType QuantityType `json:"quantity_type"`
	Image        []byte       `json:"image,omitempty"`
	ImageRef     string       `json:"image_ref,omitempty"`
	HasImage     bool         `json:"has_image"`
	LoggedAt     time.Time    `json:"logged_at"`
}

// NewWasteEntry creates a WasteEntry logged now.
func NewWasteEntry(userID int64, item string, quantity int, qt QuantityType) *WasteEntry {
	if qt == "" {
		qt = QuantitySolid
	}
	return &WasteEntry{
		UserID:       userID,
		Item:         item,
		Quantity:     quantity,
		QuantityType: qt,
		LoggedAt:     time.Now(),
	}
}

// WithImage attaches raw image bytes.
func (w *WasteEntry) WithImage(data []byte) *WasteEntry {
	w.Image = data
	w.HasImage = len(data) > 0
	return w
}

// WithLoggedAt sets a custom timestamp.
func (w *WasteEntry) WithLoggedAt(t time.Time) *WasteEntry {
	w.LoggedAt = t
	return w
}

// Unit returns the display unit for this entry.
func (w *WasteEntry) Unit() string {
	return w.QuantityType.Unit()
}
