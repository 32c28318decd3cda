package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/workflow"
)

func (s *Server) handlePutStructure(ctx *gin.Context) {
	var structure workflow.Structure
	if err := ctx.ShouldBindJSON(&structure); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow structure: " + err.Error()})
		return
	}
	if structure.WorkflowID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "workflow_id is required"})
		return
	}
	if _, err := workflow.ParsePlatform(string(structure.Platform)); err != nil {
		s.respondError(ctx, err)
		return
	}
	if err := s.c.StructureStore.Put(ctx.Request.Context(), &structure); err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"workflow_id": structure.WorkflowID})
}

func (s *Server) handleListWorkflows(ctx *gin.Context) {
	ids, err := s.c.StructureStore.List(ctx.Request.Context())
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"workflows": ids})
}

func (s *Server) handleRunReview(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	var platform workflow.Platform
	if p := ctx.Query("platform"); p != "" {
		parsed, err := workflow.ParsePlatform(p)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		platform = parsed
	}

	rep, cached, err := s.c.Reviews.RunCodeReview(ctx.Request.Context(), workflowID, platform)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cached": cached, "report": rep})
}

func (s *Server) handleGetCachedReview(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	rep, err := s.c.Reviews.GetCachedReview(ctx.Request.Context(), workflowID)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cached": true, "report": rep})
}

func (s *Server) handleRunMigration(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	source, err := workflow.ParsePlatform(ctx.Query("source"))
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	target, err := workflow.ParsePlatform(ctx.Query("target"))
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	rep, cached, err := s.c.Migrations.RunMigrationAnalysis(ctx.Request.Context(), workflowID, source, target)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cached": cached, "report": rep})
}

func (s *Server) handleRunUsage(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	rep, cached, err := s.c.Usage.RunVariableAnalysis(ctx.Request.Context(), workflowID)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cached": cached, "report": rep})
}

func (s *Server) handleExportReview(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	rep, err := s.c.Reviews.GetCachedReview(ctx.Request.Context(), workflowID)
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	switch ctx.DefaultQuery("format", "json") {
	case "csv":
		data, err := s.c.Exporter.AnalysisCSV(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := s.c.Exporter.AnalysisXLSX(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := s.c.Exporter.JSON(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/json", data)
	}
}

func (s *Server) handleExportMigration(ctx *gin.Context) {
	workflowID := core.WorkflowID(ctx.Param("id"))
	source, err := workflow.ParsePlatform(ctx.Query("source"))
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	target, err := workflow.ParsePlatform(ctx.Query("target"))
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	rep, _, err := s.c.Migrations.RunMigrationAnalysis(ctx.Request.Context(), workflowID, source, target)
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	switch ctx.DefaultQuery("format", "json") {
	case "csv":
		data, err := s.c.Exporter.MigrationCSV(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := s.c.Exporter.MigrationXLSX(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := s.c.Exporter.JSON(rep)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/json", data)
	}
}

type batchReviewRequest struct {
	WorkflowIDs []core.WorkflowID `json:"workflow_ids" binding:"required"`
}

func (s *Server) handleBatchReview(ctx *gin.Context) {
	var req batchReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch request: " + err.Error()})
		return
	}

	results, err := s.c.Batch.ReviewAll(ctx.Request.Context(), req.WorkflowIDs)
	if err != nil {
		s.respondError(ctx, err)
		return
	}

	type item struct {
		WorkflowID core.WorkflowID        `json:"workflow_id"`
		Cached     bool                   `json:"cached"`
		Report     *report.AnalysisReport `json:"report,omitempty"`
		Error      string                 `json:"error,omitempty"`
	}
	out := make([]item, len(results))
	for i, r := range results {
		out[i] = item{WorkflowID: r.WorkflowID, Cached: r.Cached, Report: r.Report}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"results": out})
}
