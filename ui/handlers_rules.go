package ui

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
	"rpascope/ports"
)

// ruleFilterFromQuery builds a RuleFilter from request query parameters.
// Absent parameters mean "any".
func ruleFilterFromQuery(ctx *gin.Context) ports.RuleFilter {
	filter := ports.RuleFilter{
		Platform:   workflow.Platform(ctx.Query("platform")),
		Category:   rules.Category(ctx.Query("category")),
		Severity:   rules.Severity(ctx.Query("severity")),
		ActiveOnly: ctx.Query("active") == "true",
		TenantID:   core.TenantID(ctx.Query("tenant_id")),
	}
	switch ctx.Query("builtin") {
	case "true":
		t := true
		filter.BuiltIn = &t
	case "false":
		f := false
		filter.BuiltIn = &f
	}
	return filter
}

func (s *Server) handleListRules(ctx *gin.Context) {
	ruleSet, err := s.c.RuleStore.List(ctx.Request.Context(), ruleFilterFromQuery(ctx))
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"rules": ruleSet, "count": len(ruleSet)})
}

func (s *Server) handleGetRule(ctx *gin.Context) {
	rule, err := s.c.RuleStore.Get(ctx.Request.Context(), core.RuleID(ctx.Param("id")))
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rule)
}

func (s *Server) handleCreateRule(ctx *gin.Context) {
	var rule rules.Rule
	if err := ctx.ShouldBindJSON(&rule); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule: " + err.Error()})
		return
	}
	rule.BuiltIn = false
	if rule.RuleID == "" {
		rule.RuleID = core.RuleID(core.NewID())
	}
	if rule.Version == 0 {
		rule.Version = 1
	}
	if err := s.c.RuleStore.Create(ctx.Request.Context(), &rule); err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rule)
}

func (s *Server) handleUpdateRule(ctx *gin.Context) {
	var rule rules.Rule
	if err := ctx.ShouldBindJSON(&rule); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule: " + err.Error()})
		return
	}
	rule.RuleID = core.RuleID(ctx.Param("id"))
	if err := s.c.RuleStore.Update(ctx.Request.Context(), &rule); err != nil {
		s.respondError(ctx, err)
		return
	}
	updated, err := s.c.RuleStore.Get(ctx.Request.Context(), rule.RuleID)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteRule(ctx *gin.Context) {
	id := core.RuleID(ctx.Param("id"))
	if err := s.c.RuleStore.Delete(ctx.Request.Context(), id); err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleSetRuleActive(active bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := core.RuleID(ctx.Param("id"))
		if err := s.c.RuleStore.SetActive(ctx.Request.Context(), id, active); err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"rule_id": id, "is_active": active})
	}
}

type bulkRulesRequest struct {
	Action ports.BulkAction `json:"action" binding:"required"`
	IDs    []core.RuleID    `json:"rule_ids" binding:"required"`
}

func (s *Server) handleBulkRules(ctx *gin.Context) {
	var req bulkRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid bulk request: " + err.Error()})
		return
	}
	switch req.Action {
	case ports.BulkActivate, ports.BulkDeactivate, ports.BulkDelete:
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown bulk action: " + string(req.Action)})
		return
	}

	affected, err := s.c.RuleStore.Bulk(ctx.Request.Context(), req.Action, req.IDs)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"action": req.Action, "affected": affected})
}

func (s *Server) handleImportRules(ctx *gin.Context) {
	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read import body: " + err.Error()})
		return
	}
	overwrite := ctx.Query("overwrite") == "true"

	result, err := s.c.RuleAdmin.ImportJSON(ctx.Request.Context(), data, overwrite)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (s *Server) handleExportRules(ctx *gin.Context) {
	filter := ruleFilterFromQuery(ctx)

	switch ctx.DefaultQuery("format", "json") {
	case "csv":
		data, err := s.c.RuleAdmin.ExportCSV(ctx.Request.Context(), filter)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "text/csv", data)
	default:
		data, err := s.c.RuleAdmin.ExportJSON(ctx.Request.Context(), filter)
		if err != nil {
			s.respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/json", data)
	}
}
