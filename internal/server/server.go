// Package server exposes the calculators over a JSON web API. It is a
// thin presentation layer: parsing, error mapping and display rounding
// live here, every calculation is delegated to the core packages.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fincalc/internal/config"
	calcerrors "fincalc/internal/errors"
	"fincalc/internal/logging"
	"fincalc/internal/store"
)

// Server hosts the calculator API.
type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	history *store.HistoryStore
	engine  *gin.Engine
}

// New creates a server with all routes registered. history may be nil.
func New(cfg *config.Config, logger zerolog.Logger, history *store.HistoryStore) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		history: history,
		engine:  engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api/v1")
	api.POST("/options/price", s.handlePrice)
	api.POST("/options/implied-vol", s.handleImpliedVol)
	api.POST("/options/breakeven", s.handleBreakeven)
	api.POST("/compound", s.handleCompound)
	api.POST("/dca", s.handleDCA)
	api.POST("/capital-gains", s.handleCapitalGains)
	api.POST("/strategy/expected-move", s.handleExpectedMove)
	api.POST("/strategy/sell-vs-exercise", s.handleSellVsExercise)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(address string) error {
	return s.engine.Run(address)
}

// record journals a completed calculation when history is available.
func (s *Server) record(calculator string, inputs, result interface{}) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(calculator, inputs, result); err != nil {
		s.logger.Warn().Err(err).Str("calculator", calculator).Msg("Failed to record history")
	}
}

// finish logs the calculation and journals it on success.
func (s *Server) finish(calculator string, start time.Time, inputs, result interface{}, err error) {
	logging.LogCalculation(s.logger, calculator, time.Since(start), err)
	if err == nil {
		s.record(calculator, inputs, result)
	}
}

// errorKind maps a domain error to the tagged kind the clients switch on.
func errorKind(err error) string {
	switch {
	case calcerrors.Is(err, calcerrors.ErrNotConverged):
		return "not_converged"
	case calcerrors.Is(err, calcerrors.ErrUnreachable):
		return "unreachable"
	case calcerrors.Is(err, calcerrors.ErrGoalNotReached):
		return "goal_not_reached"
	default:
		return "invalid_input"
	}
}

// calcError writes a domain failure. All expected domain conditions map
// to 422 with a kind tag; only malformed requests get 400 (in handlers).
func calcError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"kind":  errorKind(err),
		"error": err.Error(),
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"details": err.Error(),
	})
}

// round2 rounds a money value for display through decimal, keeping JSON
// output stable regardless of float formatting.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// round4 rounds a greek or ratio for display.
func round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
