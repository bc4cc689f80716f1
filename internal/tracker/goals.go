// ABOUTME: Goals with generated recommendations, and weekly challenges.
// ABOUTME: A new challenge is generated whenever the latest one has ended.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SetGoal stores a goal along with generated recommendations and savings.
func (t *Tracker) SetGoal(ctx context.Context, userID int64, goalType, goal string) (*models.Goal, error) {
	gt, ok := models.ParseGoalType(goalType)
	if !ok {
		return nil, invalid("unknown goal type %q (use %q or %q)", goalType, models.GoalWasteReduction, models.GoalHealthyEating)
	}
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, invalid("goal is required")
	}

	g := models.NewGoal(userID, gt, goal)
	g.CreatedAt = t.now().UTC()

	// Generate never returns an error; the group only bounds the two calls.
	var eg errgroup.Group
	eg.Go(func() error {
		g.Recommendations = t.assistant.Generate(ctx, ai.RecommendationsPrompt(string(gt), goal), 0)
		return nil
	})
	eg.Go(func() error {
		g.PotentialSavings = t.assistant.Generate(ctx, ai.SavingsPrompt(string(gt), goal), 0)
		return nil
	})
	_ = eg.Wait()

	if err := t.repo.CreateGoal(g); err != nil {
		return nil, fmt.Errorf("set goal: %w", err)
	}
	return g, nil
}

// ListGoals returns the user's goals, newest first.
func (t *Tracker) ListGoals(userID int64) ([]*models.Goal, error) {
	return t.repo.ListGoals(userID)
}

// CompleteGoal marks a goal done and returns it.
func (t *Tracker) CompleteGoal(userID, id int64) (*models.Goal, error) {
	if err := t.repo.CompleteGoal(userID, id); err != nil {
		return nil, err
	}
	return t.repo.GetGoal(userID, id)
}

// CurrentChallenge returns the user's active challenge, generating a new
// week-long one when none exists or the latest has ended. The bool reports
// whether a challenge was created.
func (t *Tracker) CurrentChallenge(ctx context.Context, userID int64) (*models.Challenge, bool, error) {
	today := t.today()

	latest, err := t.repo.LatestChallenge(userID)
	switch {
	case err == nil && latest.ActiveOn(today):
		return latest, false, nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return nil, false, err
	}

	text := t.assistant.Generate(ctx, ai.ChallengePrompt, 0)
	c := models.NewChallenge(userID, text, today)
	if err := t.repo.CreateChallenge(c); err != nil {
		return nil, false, fmt.Errorf("create challenge: %w", err)
	}
	t.logger.Info("generated challenge",
		zap.Int64("user_id", userID),
		zap.Int64("id", c.ID),
		zap.Time("ends", c.EndDate))
	return c, true, nil
}

// ListChallenges returns past and current challenges, newest first.
func (t *Tracker) ListChallenges(userID int64, limit int) ([]*models.Challenge, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return t.repo.ListChallenges(userID, limit)
}

// ChallengeProgress records a progress percentage for a challenge.
func (t *Tracker) ChallengeProgress(userID, id int64, progress int) (*models.Challenge, error) {
	if progress < 0 || progress > 100 {
		return nil, invalid("progress must be between 0 and 100")
	}
	if err := t.repo.SetChallengeProgress(userID, id, progress); err != nil {
		return nil, err
	}
	return t.repo.GetChallenge(userID, id)
}

// CompleteChallenge marks a challenge done at 100%.
func (t *Tracker) CompleteChallenge(userID, id int64) (*models.Challenge, error) {
	if err := t.repo.CompleteChallenge(userID, id); err != nil {
		return nil, err
	}
	return t.repo.GetChallenge(userID, id)
}
