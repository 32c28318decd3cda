// Package ui exposes the analysis services over HTTP. Authentication,
// billing and file-upload transport live in front of this API and are out
// of scope here.
package ui

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rpascope/domain/core"
	"rpascope/internal/container"
	"rpascope/internal/logging"
)

// Server represents the web server for the analysis API
type Server struct {
	router *gin.Engine
	c      *container.Container
	logger *logging.Logger
}

// NewServer creates the API server over an assembled container
func NewServer(c *container.Container) *Server {
	gin.SetMode(c.Config.Server.GinMode)
	s := &Server{
		router: gin.New(),
		c:      c,
		logger: c.Logger,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	workflows := api.Group("/workflows")
	workflows.POST("", s.handlePutStructure)
	workflows.GET("", s.handleListWorkflows)
	workflows.POST("/:id/review", s.handleRunReview)
	workflows.GET("/:id/review", s.handleGetCachedReview)
	workflows.GET("/:id/review/export", s.handleExportReview)
	workflows.POST("/:id/migration", s.handleRunMigration)
	workflows.GET("/:id/migration/export", s.handleExportMigration)
	workflows.POST("/:id/usage", s.handleRunUsage)

	api.POST("/batch/review", s.handleBatchReview)

	ruleRoutes := api.Group("/rules")
	ruleRoutes.GET("", s.handleListRules)
	ruleRoutes.POST("", s.handleCreateRule)
	ruleRoutes.GET("/export", s.handleExportRules)
	ruleRoutes.POST("/import", s.handleImportRules)
	ruleRoutes.POST("/bulk", s.handleBulkRules)
	ruleRoutes.GET("/:id", s.handleGetRule)
	ruleRoutes.PUT("/:id", s.handleUpdateRule)
	ruleRoutes.DELETE("/:id", s.handleDeleteRule)
	ruleRoutes.POST("/:id/activate", s.handleSetRuleActive(true))
	ruleRoutes.POST("/:id/deactivate", s.handleSetRuleActive(false))
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.c.Config.Server.Port)
	s.logger.Info("analysis API listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the underlying handler (tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError maps domain errors onto HTTP status codes. Error payloads
// always carry the offending rule/mapping/workflow in the message.
func (s *Server) respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrRuleReadOnly):
		status = http.StatusForbidden
	case core.IsConfigurationError(err), core.IsRuleError(err):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
