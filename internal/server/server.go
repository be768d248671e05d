// Package server serves the GraphQL API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/sirupsen/logrus"

	"github.com/graph-gophers/gamereviews/internal/metrics"
)

// QueryPath is where GraphQL requests are accepted.
const QueryPath = "/query"

// Config holds the HTTP settings.
type Config struct {
	Addr            string
	ServiceName     string
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to the GraphQL schema.
type Server struct {
	cfg    Config
	router *gin.Engine
	log    logrus.FieldLogger
}

// New builds the router:
//
//	GET  /        GraphQL Playground
//	POST /query   GraphQL endpoint
//	GET  /health  liveness
//	GET  /metrics Prometheus metrics
func New(cfg Config, schema *graphql.Schema, mc *metrics.Collector, log logrus.FieldLogger) (*Server, error) {
	playground, err := playgroundHandler(cfg.ServiceName, QueryPath)
	if err != nil {
		return nil, fmt.Errorf("render playground: %w", err)
	}

	r := gin.New()
	r.Use(recovery(log), requestLogger(log), mc.Middleware())

	r.POST(QueryPath, gin.WrapH(&relay.Handler{Schema: schema}))
	r.GET("/", gin.WrapF(playground))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
		})
	})
	r.GET("/metrics", gin.WrapH(mc.Handler()))

	return &Server{cfg: cfg, router: r, log: log}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("server ready")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}).Debug("http request")
	}
}

func recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"error":  err,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("request handler panic")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
