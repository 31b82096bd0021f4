package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	gql "github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpHandlers "github.com/taskmaster/planner/internal/adapters/http"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	tasks    ports.TaskRepository
	registry *prometheus.Registry
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance serving schema over HTTP
func New(cfg *config.Config, schema gql.Schema, tasks ports.TaskRepository, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug && cfg.App.IsDevelopment()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		tasks:  tasks,
	}

	// Setup metrics
	var observer httpHandlers.OperationObserver
	if cfg.Metrics.Enabled {
		observer = server.setupMetrics()
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	graphqlHandler := httpHandlers.NewGraphQLHandler(schema, appLogger, observer)
	server.setupRoutes(graphqlHandler)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(graphqlHandler *httpHandlers.GraphQLHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// GraphQL endpoint
	s.echo.POST(s.config.Server.GraphQLPath, graphqlHandler.Execute)
	s.echo.GET(s.config.Server.GraphQLPath, graphqlHandler.Query)

	if s.registry != nil {
		metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
		s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(metricsHandler))
	}
}

// setupMetrics configures Prometheus metrics and returns the GraphQL operation observer
func (s *Server) setupMetrics() httpHandlers.OperationObserver {
	s.registry = prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	operationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_graphql_operations_total",
			Help: "Total number of executed GraphQL operations",
		},
		[]string{"operation", "outcome"},
	)

	storedTasks := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "planner_tasks",
			Help: "Number of tasks currently held in memory",
		},
		func() float64 {
			return float64(s.tasks.Count(context.Background()))
		},
	)

	s.registry.MustRegister(requestsTotal, requestDuration, operationsTotal, storedTasks)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	return func(operation string, result *gql.Result, _ time.Duration) {
		outcome := "success"
		if result.HasErrors() {
			outcome = "error"
		}
		operationsTotal.WithLabelValues(operation, outcome).Inc()
	}
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"tasks":   s.tasks.Count(c.Request().Context()),
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the underlying router
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address, "graphql_path", s.config.Server.GraphQLPath)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}

			he          *echo.HTTPError
			validateErr validator.ValidationErrors
		)

		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &validateErr):
			code = http.StatusBadRequest
			msg = httpHandlers.ErrorResponse{Error: "validation failed", Details: validateErr.Error()}
		default:
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
