// ABOUTME: Repository interface for ecoeats data storage.
// ABOUTME: Defines the CRUD and aggregate contract shared by SQLite and Postgres.
package storage

import (
	"time"

	"github.com/harperreed/ecoeats/internal/models"
)

// Repository defines the storage interface for tracker data.
// Every user-owned lookup takes the owner's id; a record owned by someone
// else is reported as ErrNotFound.
type Repository interface {
	// User operations
	CreateUser(u *models.User) error
	GetUser(id int64) (*models.User, error)
	GetUserByName(username string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	SetPassword(userID int64, hash string) error

	// Food waste operations
	CreateWaste(w *models.WasteEntry) error
	GetWaste(userID, id int64) (*models.WasteEntry, error)
	ListWaste(userID int64, limit int) ([]*models.WasteEntry, error)
	DeleteWaste(userID, id int64) error

	// Meal operations
	CreateMeal(m *models.Meal) error
	GetMeal(userID, id int64) (*models.Meal, error)
	ListMeals(userID int64, limit int) ([]*models.Meal, error)
	DeleteMeal(userID, id int64) error

	// Goal operations
	CreateGoal(g *models.Goal) error
	GetGoal(userID, id int64) (*models.Goal, error)
	ListGoals(userID int64) ([]*models.Goal, error)
	CompleteGoal(userID, id int64) error

	// Challenge operations
	CreateChallenge(c *models.Challenge) error
	GetChallenge(userID, id int64) (*models.Challenge, error)
	LatestChallenge(userID int64) (*models.Challenge, error)
	ListChallenges(userID int64, limit int) ([]*models.Challenge, error)
	SetChallengeProgress(userID, id int64, progress int) error
	CompleteChallenge(userID, id int64) error

	// Community operations
	CreatePost(p *models.Post) error
	GetPost(id int64) (*models.Post, error)
	ListPosts(limit int) ([]*models.Post, error)
	LikePost(id int64) (int, error)

	// Streak operations
	GetUserStats(userID int64) (*models.UserStats, error)
	SaveUserStats(s *models.UserStats) error

	// Aggregates
	Summary(userID int64) (*Summary, error)
	DailyWaste(userID int64, since time.Time) ([]DailyTotal, error)
	DailyMeals(userID int64, since time.Time) ([]DailyTotal, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
