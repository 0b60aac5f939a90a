package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pbaille/ventures/internal/acknowledgment"
	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/identity"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/pitch"
	"github.com/pbaille/ventures/internal/watchlist"
)

// Deps are the components the API serves
type Deps struct {
	Catalog         *catalog.Catalog
	Watchlist       *watchlist.Manager
	Acknowledgments *acknowledgment.Workflow
	Notifications   *notification.Dispatcher
	Identity        *identity.Resolver
	Pitch           *pitch.Service
}

// Server handles HTTP requests for the investor workflow API
type Server struct {
	deps   Deps
	log    *logger.Logger
	engine *gin.Engine
}

// New creates a new API server
func New(deps Deps, log *logger.Logger) *Server {
	s := &Server{deps: deps, log: logger.OrNop(log).With("service", "HTTP")}
	s.engine = s.routes()
	return s
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

const shutdownTimeout = 10 * time.Second

// Run listens on addr and serves until ctx ends
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then drains in-flight
// requests before returning
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	s.log.Info("starting server", "addr", ln.Addr().String())
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(withCORS())

	r.GET("/healthcheck", s.health)

	api := r.Group("/api")
	{
		api.GET("/me", s.me)

		api.GET("/startups", s.searchStartups)
		api.GET("/startups/:id", s.getStartup)
		api.POST("/startups/:id/pitch", s.generatePitch)

		api.GET("/watchlist", s.listWatchlist)
		api.POST("/watchlist", s.addToWatchlist)
		api.DELETE("/watchlist/:id", s.removeFromWatchlist)

		api.GET("/acknowledgments", s.listAcknowledgments)
		api.POST("/acknowledgments", s.submitAcknowledgment)

		api.GET("/notifications", s.listNotifications)
		api.POST("/notifications/read-all", s.markAllNotificationsRead)
		api.POST("/notifications/:id/read", s.markNotificationRead)
	}

	return r
}

// withCORS allows the local frontend dev servers
func withCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	})
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// APIError is the error body
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError under "error"
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func writeError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// fail maps domain errors onto HTTP statuses
func (s *Server) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	writeError(c, status, code, err)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingContext):
		return http.StatusUnprocessableEntity, "missing_context"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway, "generation_failed"
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusInternalServerError, "submission_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func queryBool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
