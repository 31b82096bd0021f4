package http

import (
	"encoding/json"
	"net/http"
	"time"

	gql "github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// OperationObserver is notified after every executed GraphQL request
type OperationObserver func(operation string, result *gql.Result, duration time.Duration)

// GraphQLHandler serves GraphQL requests over HTTP
type GraphQLHandler struct {
	schema   gql.Schema
	logger   *logger.Logger
	observer OperationObserver
}

// NewGraphQLHandler creates a new GraphQL handler
func NewGraphQLHandler(schema gql.Schema, logger *logger.Logger, observer OperationObserver) *GraphQLHandler {
	return &GraphQLHandler{
		schema:   schema,
		logger:   logger.WithComponent("graphql"),
		observer: observer,
	}
}

// Execute handles POST requests with a JSON GraphQL body
func (h *GraphQLHandler) Execute(c echo.Context) error {
	var req GraphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.execute(c, req)
}

// Query handles GET requests with query, variables and operationName parameters
func (h *GraphQLHandler) Query(c echo.Context) error {
	req := GraphQLRequest{
		Query:         c.QueryParam("query"),
		OperationName: c.QueryParam("operationName"),
	}

	if raw := c.QueryParam("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid variables parameter")
		}
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.execute(c, req)
}

func (h *GraphQLHandler) execute(c echo.Context, req GraphQLRequest) error {
	start := time.Now()

	result := gql.Do(gql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request().Context(),
	})

	duration := time.Since(start)
	operation := req.OperationName
	if operation == "" {
		operation = "anonymous"
	}

	h.logger.LogGraphQLOperation(operation, float64(duration.Nanoseconds())/1000000, len(result.Errors))
	if h.observer != nil {
		h.observer(operation, result, duration)
	}

	return c.JSON(http.StatusOK, result)
}

// Request/Response types

// GraphQLRequest is the standard GraphQL-over-HTTP request body
type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// ErrorResponse is the body returned for rejected requests
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
