// ABOUTME: Handlers for goals, challenges and community posts.
// ABOUTME: These routes sit behind bearer auth in the /api group.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type goalRequest struct {
	Type string `json:"type" binding:"required"`
	Goal string `json:"goal" binding:"required"`
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type postRequest struct {
	Post string `json:"post" binding:"required"`
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.tracker.ListGoals(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (s *Server) createGoal(c *gin.Context) {
	var in goalRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, err := s.tracker.SetGoal(c.Request.Context(), userID(c), in.Type, in.Goal)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": g, "savings": g.Savings()})
}

func (s *Server) completeGoal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	g, err := s.tracker.CompleteGoal(userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) currentChallenge(c *gin.Context) {
	ch, created, err := s.tracker.CurrentChallenge(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"challenge":      ch,
		"days_remaining": ch.DaysRemaining(s.tracker.Now()),
		"created":        created,
	})
}

func (s *Server) listChallenges(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	all, err := s.tracker.ListChallenges(userID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": all})
}

func (s *Server) challengeProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in progressRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	ch, err := s.tracker.ChallengeProgress(userID(c), id, *in.Progress)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) completeChallenge(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ch, err := s.tracker.CompleteChallenge(userID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) listPosts(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	posts, err := s.tracker.ListPosts(limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) createPost(c *gin.Context) {
	var in postRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := s.tracker.AddPost(userID(c), in.Post)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) likePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	likes, err := s.tracker.LikePost(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "likes": likes})
}
