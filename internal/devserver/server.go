// Package devserver is a local stand-in for the remote ideas API.
package devserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/repository"
)

const defaultTokenTTL = 24 * time.Hour

// Config controls authentication and CORS. Auth is disabled when
// PasswordHash is empty.
type Config struct {
	Username     string
	PasswordHash []byte
	Secret       []byte
	TokenTTL     time.Duration
	AllowOrigins []string
}

// AuthEnabled reports whether idea routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return len(c.PasswordHash) > 0
}

type server struct {
	repo   repository.Repository
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewRouter builds the gin engine serving the ideas API over repo.
func NewRouter(repo repository.Repository, cfg Config, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.AuthEnabled() && len(cfg.Secret) == 0 {
		cfg.Secret = []byte(uuid.NewString())
	}
	s := &server{repo: repo, cfg: cfg, logger: logger, now: time.Now}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.POST("/token", s.tokenHandler)

	ideas := r.Group("/ideas")
	if cfg.AuthEnabled() {
		ideas.Use(s.authMiddleware())
	}
	{
		ideas.GET("", s.listHandler)
		ideas.POST("", s.createHandler)
		ideas.GET("/:id", s.getHandler)
		ideas.PUT("/:id", s.updateHandler)
		ideas.DELETE("/:id", s.deleteHandler)
		ideas.PUT("/change_status/:id", s.changeStatusHandler)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *server) listHandler(c *gin.Context) {
	ideas, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "list ideas", err)
		return
	}
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *server) getHandler(c *gin.Context) {
	i, err := s.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.repoError(c, "get idea", err)
		return
	}
	c.JSON(http.StatusOK, i)
}

func (s *server) createHandler(c *gin.Context) {
	var i idea.Idea
	if err := c.ShouldBindJSON(&i); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if strings.TrimSpace(i.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if i.ID == "" {
		i.ID = idea.NewID()
	}
	if i.RemoteID == "" {
		i.RemoteID = strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Create(c.Request.Context(), i); err != nil {
		s.repoError(c, "create idea", err)
		return
	}
	c.JSON(http.StatusCreated, i)
}

func (s *server) updateHandler(c *gin.Context) {
	var i idea.Idea
	if err := c.ShouldBindJSON(&i); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	i.ID = c.Param("id")

	ctx := c.Request.Context()
	if err := s.repo.Update(ctx, i); err != nil {
		s.repoError(c, "update idea", err)
		return
	}
	updated, err := s.repo.Get(ctx, i.ID)
	if err != nil {
		s.repoError(c, "get idea", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type statusRequest struct {
	Status idea.Status `json:"status"`
}

func (s *server) changeStatusHandler(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		s.repoError(c, "change status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *server) deleteHandler(c *gin.Context) {
	if err := s.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.repoError(c, "delete idea", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) repoError(c *gin.Context, op string, err error) {
	var notFound ideaerrors.IdeaNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}
	var invalidID ideaerrors.InvalidIDError
	if errors.As(err, &invalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}
	s.internalError(c, op, err)
}

func (s *server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op, "details": err.Error()})
}
