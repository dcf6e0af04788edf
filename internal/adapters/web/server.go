// Package web serves the diagnostic HTTP API: health, the current fleet
// snapshot and the resolved string catalog.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/ports/input"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

type Server struct {
	cfg     *config.Config
	query   input.VehicleQuery
	strings output.Strings
	logger  *slog.Logger
	srv     *http.Server
}

func NewServer(cfg *config.Config, query input.VehicleQuery, strs output.Strings, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		query:   query,
		strings: strs,
		logger:  logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	router.GET("/healthz", s.health)
	api := router.Group("/api/v1")
	api.GET("/vehicles", s.listVehicles)
	api.GET("/vehicles/:vin", s.getVehicle)
	api.GET("/strings", s.getStrings)

	s.srv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	stats := s.query.Stats()
	status := "ok"
	code := http.StatusOK
	if !stats.Available {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":       status,
		"available":    stats.Available,
		"vehicles":     stats.Vehicles,
		"failures":     stats.Failures,
		"last_refresh": stats.LastRefresh,
	})
}

func (s *Server) listVehicles(c *gin.Context) {
	vehicles := s.query.Vehicles()
	out := make([]vehicleSummary, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, summarize(v))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getVehicle(c *gin.Context) {
	vehicle, err := s.query.Vehicle(c.Param("vin"))
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail(vehicle))
}

func (s *Server) getStrings(c *gin.Context) {
	locale := c.Query("lang")
	if locale == "" {
		locale = s.cfg.Locale
	}
	c.JSON(http.StatusOK, gin.H{
		"locale":   locale,
		"locales":  s.strings.Locales(),
		"entities": s.strings.EntityCatalog(locale),
	})
}
