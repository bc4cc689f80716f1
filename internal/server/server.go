// ABOUTME: HTTP JSON API over the tracker, built on gin.
// ABOUTME: Routes, startup and graceful shutdown live here; handlers are split by resource.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/ecoeats/internal/auth"
	"github.com/harperreed/ecoeats/internal/tracker"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server serves the ecoeats API.
type Server struct {
	tracker *tracker.Tracker
	tokens  *auth.Tokens
	logger  *zap.Logger
	engine  *gin.Engine

	// allowRegister enables POST /auth/register.
	allowRegister bool
}

// Option customises a Server.
type Option func(*Server)

// WithRegistration toggles self-service account creation.
func WithRegistration(allow bool) Option {
	return func(s *Server) { s.allowRegister = allow }
}

// New builds the router.
func New(tr *tracker.Tracker, tokens *auth.Tokens, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{tracker: tr, tokens: tokens, logger: logger, allowRegister: true}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), gin.Recovery())
	r.MaxMultipartMemory = 12 << 20

	r.GET("/healthz", s.health)

	a := r.Group("/auth")
	{
		a.POST("/login", s.login)
		a.POST("/register", s.register)
	}

	api := r.Group("/api")
	api.Use(s.authRequired())
	{
		api.GET("/dashboard", s.dashboard)
		api.GET("/trends", s.trends)
		api.GET("/streak", s.streak)
		api.POST("/streak/checkin", s.checkIn)
		api.GET("/tips/:kind", s.tip)
		api.GET("/report", s.weeklyReport)
		api.POST("/grocery/analyze", s.analyzeGrocery)

		api.GET("/waste", s.listWaste)
		api.POST("/waste", s.createWaste)
		api.POST("/waste/analyze", s.analyzeWaste)
		api.GET("/waste/:id", s.getWaste)
		api.GET("/waste/:id/image", s.wasteImage)
		api.DELETE("/waste/:id", s.deleteWaste)

		api.GET("/meals", s.listMeals)
		api.POST("/meals", s.createMeal)
		api.POST("/meals/analyze", s.analyzeMeal)
		api.GET("/meals/:id", s.getMeal)
		api.GET("/meals/:id/image", s.mealImage)
		api.DELETE("/meals/:id", s.deleteMeal)

		api.GET("/goals", s.listGoals)
		api.POST("/goals", s.createGoal)
		api.POST("/goals/:id/complete", s.completeGoal)

		api.GET("/challenge", s.currentChallenge)
		api.GET("/challenges", s.listChallenges)
		api.PUT("/challenges/:id/progress", s.challengeProgress)
		api.POST("/challenges/:id/complete", s.completeChallenge)

		api.GET("/posts", s.listPosts)
		api.POST("/posts", s.createPost)
		api.POST("/posts/:id/like", s.likePost)
	}
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
