// Package rest exposes the bookshelf services over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const shutdownTimeout = 10 * time.Second

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(token string) (*auth.Claims, error)
}

type BookService interface {
	List(ctx context.Context, caller *auth.Claims, filter models.BookFilter) ([]*models.Book, error)
	Create(ctx context.Context, caller *auth.Claims, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, caller *auth.Claims, id string, patch models.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, caller *auth.Claims, id string) (*models.Book, error)
}

// Options configures a Server. Pinger may be nil, in which case /health
// always reports ok.
type Options struct {
	Address       string
	AuthRateLimit string
	Pinger        dbx.Pinger
}

type Server struct {
	address string
	engine  *gin.Engine
	auth    AuthService
	books   BookService
	pinger  dbx.Pinger
	logger  logging.Logger
	metrics *metrics
}

func NewServer(opts Options, l logging.Logger, as AuthService, bs BookService) (*Server, error) {
	rate, err := limiter.NewRateFromFormatted(opts.AuthRateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid auth rate limit %q: %w", opts.AuthRateLimit, err)
	}

	s := &Server{
		address: opts.Address,
		auth:    as,
		books:   bs,
		pinger:  opts.Pinger,
		logger:  l.With("module", "rest_server"),
		metrics: newMetrics(),
	}

	authLimiter := mgin.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			fail(c, http.StatusTooManyRequests, "Too many requests, please try again later.")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			s.internalError(c, "rate limiter", err)
		}),
	)

	s.engine = s.routes(authLimiter)
	return s, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(authLimiter gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(s.recovered),
		s.requestLogger(),
		s.metrics.middleware(),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:          12 * time.Hour,
		}),
	)

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	authGroup := r.Group("/api/auth", authLimiter)
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	bookGroup := r.Group("/api/books", s.authenticate())
	bookGroup.GET("", s.listBooks)
	bookGroup.POST("", s.createBook)
	bookGroup.PATCH("/:id", s.updateBook)
	bookGroup.DELETE("/:id", s.deleteBook)

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Route not found")
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully. It
// returns only after in-flight requests have finished or shutdownTimeout
// has passed.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listen)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	if s.pinger != nil {
		if err := s.pinger.PingContext(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			fail(c, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}

func (s *Server) recovered(c *gin.Context, rec any) {
	s.logger.Error(c.Request.Context(), "panic serving request", "panic", rec, "path", c.Request.URL.Path)
	fail(c, http.StatusInternalServerError, "internal server error")
}
