// ABOUTME: Handlers for auth, dashboard, streak, tips, trends and the weekly report.
// ABOUTME: Responses are JSON; the report endpoint streams a PDF.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/report"
	"github.com/harperreed/ecoeats/internal/tracker"
	"go.uber.org/zap"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      *models.User        `json:"user"`
	Streak    *tracker.StreakInfo `json:"streak,omitempty"`
}

func (s *Server) login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}

	u, err := s.tracker.Authenticate(in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	s.startSession(c, http.StatusOK, u)
}

func (s *Server) register(c *gin.Context) {
	if !s.allowRegister {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "registration is disabled"})
		return
	}
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}

	u, err := s.tracker.Register(in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	s.startSession(c, http.StatusCreated, u)
}

// startSession checks the user in for the day and issues a token.
func (s *Server) startSession(c *gin.Context, status int, u *models.User) {
	streak, err := s.tracker.CheckIn(u.ID)
	if err != nil {
		s.logger.Warn("check-in failed", zap.Int64("user_id", u.ID), zap.Error(err))
	}

	token, expires, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, sessionResponse{Token: token, ExpiresAt: expires, User: u, Streak: streak})
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.tracker.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) trends(c *gin.Context) {
	days, err := s.tracker.WeeklyTrends(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (s *Server) streak(c *gin.Context) {
	info, err := s.tracker.Streak(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) checkIn(c *gin.Context) {
	info, err := s.tracker.CheckIn(userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) tip(c *gin.Context) {
	kind, ok := tracker.ParseTipKind(c.Param("kind"))
	if !ok {
		badRequest(c, "unknown tip kind")
		return
	}
	text, err := s.tracker.Tip(c.Request.Context(), userID(c), kind)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "text": text})
}

func (s *Server) weeklyReport(c *gin.Context) {
	pdf, err := s.tracker.WeeklyReport(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(time.Now())+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
