// ABOUTME: Tracker ties storage, AI copy, photo storage and reports into user-facing operations.
// ABOUTME: Every surface (CLI, HTTP, MCP) calls through here.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/auth"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/storage"
	"go.uber.org/zap"
)

var (
	// ErrInvalid marks input that failed validation.
	ErrInvalid = errors.New("invalid input")
	// ErrExists is returned when registering a taken username.
	ErrExists = errors.New("already exists")
)

// Labeler detects labels in an image.
type Labeler interface {
	Labels(ctx context.Context, image []byte) ([]ai.Label, error)
}

// Tracker runs ecoeats operations for users.
type Tracker struct {
	repo      storage.Repository
	assistant *ai.Assistant
	images    media.Store
	labeler   Labeler
	logger    *zap.Logger
	now       func() time.Time
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithImageStore sets where uploaded photos go; the default keeps them in the database.
func WithImageStore(s media.Store) Option {
	return func(t *Tracker) { t.images = s }
}

// WithLabeler enables label detection on analysed photos.
func WithLabeler(l Labeler) Option {
	return func(t *Tracker) { t.labeler = l }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker.
func New(repo storage.Repository, assistant *ai.Assistant, opts ...Option) *Tracker {
	t := &Tracker{
		repo:      repo,
		assistant: assistant,
		images:    media.NewDatabaseStore(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Repository exposes the underlying storage.
func (t *Tracker) Repository() storage.Repository {
	return t.repo
}

// Now returns the tracker's current time in UTC.
func (t *Tracker) Now() time.Time {
	return t.now().UTC()
}

// today is the current UTC calendar day.
func (t *Tracker) today() time.Time {
	return models.Day(t.now().UTC())
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// EnsureUser returns the named user, creating it without a password if needed.
func (t *Tracker) EnsureUser(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	u, err := t.repo.GetUserByName(username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	u = models.NewUser(username)
	if err := t.repo.CreateUser(u); err != nil {
		return nil, err
	}
	t.logger.Info("created user", zap.String("username", username))
	return u, nil
}

// Register creates a user that can log in with the given password.
func (t *Tracker) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}
	if _, err := t.repo.GetUserByName(username); err == nil {
		return nil, fmt.Errorf("user %q %w", username, ErrExists)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := models.NewUser(username)
	u.PasswordHash = hash
	if err := t.repo.CreateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword sets or replaces a user's password, creating the user if needed.
func (t *Tracker) SetPassword(username, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}
	u, err := t.EnsureUser(username)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash != "" && auth.CheckPassword(u.PasswordHash, password) == nil {
		return u, nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := t.repo.SetPassword(u.ID, hash); err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	return u, nil
}

// Authenticate checks a username and password.
func (t *Tracker) Authenticate(username, password string) (*models.User, error) {
	u, err := t.repo.GetUserByName(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, auth.ErrBadCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	return u, nil
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return invalid("username is required")
	case len(username) > 64:
		return invalid("username is longer than 64 characters")
	case strings.ContainsAny(username, " \t\n"):
		return invalid("username must not contain whitespace")
	}
	return nil
}

// StreakInfo is a user's check-in streak and the achievement it earns.
type StreakInfo struct {
	Streak      int                `json:"streak"`
	LastLogin   time.Time          `json:"last_login"`
	Achievement models.Achievement `json:"achievement"`
}

// CheckIn records today's visit and returns the updated streak. Visiting
// again on the same day leaves the stored row untouched.
func (t *Tracker) CheckIn(userID int64) (*StreakInfo, error) {
	today := t.today()

	stats, err := t.repo.GetUserStats(userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	streak, changed := models.NextStreak(stats, today)
	if !changed {
		return &StreakInfo{Streak: streak, LastLogin: stats.LastLogin, Achievement: models.AchievementFor(streak)}, nil
	}

	updated := &models.UserStats{UserID: userID, LastLogin: today, Streak: streak}
	if err := t.repo.SaveUserStats(updated); err != nil {
		return nil, err
	}
	return &StreakInfo{Streak: streak, LastLogin: today, Achievement: models.AchievementFor(streak)}, nil
}

// Streak reports the current streak without checking in. A streak whose
// last check-in is older than yesterday reads as 0.
func (t *Tracker) Streak(userID int64) (*StreakInfo, error) {
	stats, err := t.repo.GetUserStats(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &StreakInfo{Achievement: models.AchievementFor(0)}, nil
	}
	if err != nil {
		return nil, err
	}
	streak := stats.Streak
	if models.DaysBetween(stats.LastLogin, t.today()) > 1 {
		streak = 0
	}
	return &StreakInfo{Streak: streak, LastLogin: stats.LastLogin, Achievement: models.AchievementFor(streak)}, nil
}
