// ABOUTME: Food waste and meal logging, including optional photos.
// ABOUTME: Meals get a generated nutrition summary before they are stored.
package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/models"
	"go.uber.org/zap"
)

// DefaultListLimit bounds list calls that pass no limit.
const DefaultListLimit = 50

// WasteInput describes a waste entry to log.
type WasteInput struct {
	Item         string
	Quantity     int
	QuantityType string
	Image        []byte
}

// MealInput describes a meal to log.
type MealInput struct {
	Description string
	Quantity    *int
	Image       []byte
}

// LogWaste stores a waste entry for the user.
func (t *Tracker) LogWaste(ctx context.Context, userID int64, in WasteInput) (*models.WasteEntry, error) {
	item := strings.TrimSpace(in.Item)
	if item == "" {
		return nil, invalid("item is required")
	}
	if in.Quantity < 0 {
		return nil, invalid("quantity must not be negative")
	}
	qt, ok := models.ParseQuantityType(in.QuantityType)
	if !ok {
		return nil, invalid("unknown quantity type %q (use solid or liquid)", in.QuantityType)
	}

	w := models.NewWasteEntry(userID, item, in.Quantity, qt).WithLoggedAt(t.now().UTC())
	if len(in.Image) > 0 {
		att, err := t.storeImage(ctx, "waste", in.Image)
		if err != nil {
			return nil, err
		}
		w.WithImage(att.Data)
		w.ImageRef = att.Ref
		w.HasImage = true
	}

	if err := t.repo.CreateWaste(w); err != nil {
		return nil, fmt.Errorf("log waste: %w", err)
	}
	t.logger.Debug("logged waste",
		zap.Int64("user_id", userID),
		zap.Int64("id", w.ID),
		zap.Int("quantity", w.Quantity),
		zap.String("unit", w.Unit()))
	return w, nil
}

// ListWaste returns the user's waste entries, newest first.
func (t *Tracker) ListWaste(userID int64, limit int) ([]*models.WasteEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return t.repo.ListWaste(userID, limit)
}

// GetWaste returns one waste entry with its image bytes loaded.
func (t *Tracker) GetWaste(ctx context.Context, userID, id int64) (*models.WasteEntry, error) {
	w, err := t.repo.GetWaste(userID, id)
	if err != nil {
		return nil, err
	}
	if len(w.Image) == 0 && w.ImageRef != "" {
		data, err := t.images.Get(ctx, w.ImageRef)
		if err != nil {
			return nil, fmt.Errorf("load waste image: %w", err)
		}
		w.Image = data
	}
	return w, nil
}

// DeleteWaste removes one of the user's waste entries.
func (t *Tracker) DeleteWaste(userID, id int64) error {
	return t.repo.DeleteWaste(userID, id)
}

// LogMeal stores a meal with a generated nutrition summary.
func (t *Tracker) LogMeal(ctx context.Context, userID int64, in MealInput) (*models.Meal, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, invalid("meal description is required")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, invalid("quantity must not be negative")
	}

	var att *media.Attachment
	if len(in.Image) > 0 {
		var err error
		if att, err = t.storeImage(ctx, "meal", in.Image); err != nil {
			return nil, err
		}
	}

	nutrition := t.assistant.Generate(ctx, ai.NutritionPrompt(desc), 0)
	m := models.NewMeal(userID, desc).WithNutrition(nutrition).WithLoggedAt(t.now().UTC())
	if in.Quantity != nil {
		m.WithQuantity(*in.Quantity)
	}
	if att != nil {
		m.WithImage(att.Data)
		m.ImageRef = att.Ref
		m.HasImage = true
	}

	if err := t.repo.CreateMeal(m); err != nil {
		return nil, fmt.Errorf("log meal: %w", err)
	}
	return m, nil
}

// ListMeals returns the user's meals, newest first.
func (t *Tracker) ListMeals(userID int64, limit int) ([]*models.Meal, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return t.repo.ListMeals(userID, limit)
}

// GetMeal returns one meal with its image bytes loaded.
func (t *Tracker) GetMeal(ctx context.Context, userID, id int64) (*models.Meal, error) {
	m, err := t.repo.GetMeal(userID, id)
	if err != nil {
		return nil, err
	}
	if len(m.Image) == 0 && m.ImageRef != "" {
		data, err := t.images.Get(ctx, m.ImageRef)
		if err != nil {
			return nil, fmt.Errorf("load meal image: %w", err)
		}
		m.Image = data
	}
	return m, nil
}

// DeleteMeal removes one of the user's meals.
func (t *Tracker) DeleteMeal(userID, id int64) error {
	return t.repo.DeleteMeal(userID, id)
}

// storeImage hands an upload to the image store, reporting bad images as ErrInvalid.
func (t *Tracker) storeImage(ctx context.Context, kind string, data []byte) (*media.Attachment, error) {
	if _, err := media.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	att, err := t.images.Put(ctx, kind, data)
	if err != nil {
		return nil, fmt.Errorf("store %s image: %w", kind, err)
	}
	return att, nil
}
