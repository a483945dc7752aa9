// Package server exposes the FIFO engine over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/etnz/lots/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// NewRouter registers the routes of h, behind the given middleware.
func NewRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware...)

	r.GET("/health", h.Health)

	v1 := r.Group("/v1", h.limitBody)
	v1.POST("/positions", h.Position)
	v1.POST("/positions/batch", h.Batch)
	v1.POST("/realised", h.Realised)
	return r
}

// Run serves the API on cfg.Addr until ctx is done, then shuts the server
// down gracefully.
func Run(ctx context.Context, cfg config.ServerConfig, verbose bool) error {
	var middleware []gin.HandlerFunc
	if verbose {
		middleware = append(middleware, gin.Logger())
	}
	r := NewRouter(NewHandler(cfg.MaxBodyBytes), middleware...)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
