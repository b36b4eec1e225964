package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/interfaces"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// -----------------------------------------------------------------------------
// ReportServer
// -----------------------------------------------------------------------------

// ReportServer exposes threshold analysis over HTTP. Every /thresholds
// request is one complete batch run; runs never overlap.
type ReportServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Analyzer interfaces.IThresholdAnalyzer
	engine   *gin.Engine
	http     *http.Server
	now      func() time.Time

	runMutex sync.Mutex

	stateMutex sync.RWMutex
	latest     *models.MThresholdReport
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewReportServer(cfg *models.MConfig, log *logger.Logger, analyzer interfaces.IThresholdAnalyzer, gatherer prometheus.Gatherer) *ReportServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &ReportServer{
		Config:   cfg,
		Logger:   log,
		Analyzer: analyzer,
		engine:   gin.New(),
		now:      time.Now,
	}
	s.engine.Use(gin.Recovery())

	// setup web routes
	s.setupRoutes(gatherer)
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ReportServer) setupRoutes(gatherer prometheus.Gatherer) {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/thresholds", s.getThresholds)
	s.engine.GET("/api/thresholds/latest", s.getLatest)

	if gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *ReportServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *ReportServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.Info("Starting report server on %s", addr)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ReportServer) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *ReportServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	var lastRun interface{}
	if s.latest != nil {
		lastRun = s.latest.GeneratedAt
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"last_run": lastRun,
	})
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getThresholds(c *gin.Context) {
	s.runMutex.Lock()
	report, err := s.Analyzer.Run(c.Request.Context(), s.now())
	s.runMutex.Unlock()

	if err != nil {
		s.Logger.Error("Analysis request failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.stateMutex.Lock()
	s.latest = report
	s.stateMutex.Unlock()

	c.JSON(http.StatusOK, report)
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getLatest(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	if s.latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis has run yet"})
		return
	}
	c.JSON(http.StatusOK, s.latest)
}

// -----------------------------------------------------------------------------

// statusFor maps analysis errors to HTTP status codes.
func statusFor(err error) int {
	switch helpers.ExitCode(err) {
	case helpers.ExitRepositoryUnavailable:
		return http.StatusServiceUnavailable
	case helpers.ExitEmptySampleSet:
		return http.StatusNotFound
	case helpers.ExitMalformedSample, helpers.ExitUnsupportedUnit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
