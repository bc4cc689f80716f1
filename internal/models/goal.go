// ABOUTME: Goal model with goal types and savings parsing.
// ABOUTME: Recommendations and potential savings are generated text.
package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// GoalType is the category of a goal.
type GoalType string

const (
	GoalWasteReduction GoalType = "Food Waste Reduction"
	GoalHealthyEating  GoalType = "Healthy Eating"
)

// AllGoalTypes lists the valid goal types.
var AllGoalTypes = []GoalType{GoalWasteReduction, GoalHealthyEating}

// ParseGoalType accepts the display names and short aliases ("waste", "eating").
func ParseGoalType(s string) (GoalType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food waste reduction", "waste", "food-waste", "food_waste":
		return GoalWasteReduction, true
	case "healthy eating", "eating", "healthy", "healthy-eating", "healthy_eating":
		return GoalHealthyEating, true
	default:
		return "", false
	}
}

// Goal is a user-defined target with generated recommendations.
type Goal struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Type             GoalType  `json:"type"`
	Goal             string    `json:"goal"`
	Recommendations  string    `json:"recommendations"`
	PotentialSavings string    `json:"potential_savings"`
	CreatedAt        time.Time `json:"created_at"`
	Completed        bool      `json:"completed"`
}

// NewGoal creates an open Goal.
func NewGoal(userID int64, goalType GoalType, goal string) *Goal {
	return &Goal{
		UserID:    userID,
		Type:      goalType,
		Goal:      goal,
		CreatedAt: time.Now(),
	}
}

// Savings returns the potential savings as a dollar amount.
func (g *Goal) Savings() float64 {
	return ParseSavings(g.PotentialSavings)
}

var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseSavings extracts the first dollar amount from free text such as
// "You could save about $1,250.50 a year". It returns 0 when no number is present.
func ParseSavings(text string) float64 {
	cleaned := strings.ReplaceAll(text, ",", "")
	match := amountPattern.FindString(cleaned)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
