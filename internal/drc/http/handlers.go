// Package http exposes the DRC engine over gin. The handler owns transport
// and persistence concerns; the engine itself stays a pure function.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/socforge/drc-backend/internal/catalog"
	"github.com/socforge/drc-backend/internal/drc/detection/rules"
	"github.com/socforge/drc-backend/internal/drc/domain"
	"github.com/socforge/drc-backend/internal/drc/repository"
	"github.com/socforge/drc-backend/internal/drc/service"
)

// Handler serves the DRC endpoints. Cache and history are both optional;
// with neither configured the analyze endpoint still works, it just doesn't
// remember anything.
type Handler struct {
	cache    *repository.ReportCache
	history  *repository.HistoryRepo
	defaults rules.Options
}

// New creates a Handler. Either repository may be nil; defaults come from
// server configuration and individual requests can only opt into stricter
// checking, not out of it.
func New(cache *repository.ReportCache, history *repository.HistoryRepo, defaults rules.Options) *Handler {
	return &Handler{cache: cache, history: history, defaults: defaults}
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: diagram is required"})
		return
	}
	ctx := c.Request.Context()
	logger := service.NewLogger(ctx)

	var provider catalog.Provider
	if len(req.Catalogue) > 0 {
		cat, err := catalog.New(req.Catalogue)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		provider = cat
	}

	opts := h.defaults
	if req.CheckOptionalPorts {
		opts.CheckOptionalPorts = true
	}

	// The cache key is the diagram hash alone, so only requests running
	// with the default options may use it.
	cacheable := h.cache != nil && opts.CheckOptionalPorts == h.defaults.CheckOptionalPorts
	hash := repository.DiagramHash(req.Diagram)
	if cacheable {
		if cached, err := h.cache.Get(ctx, hash); err == nil {
			logger.LogInfof("drc_analyze_http", "cache hit for diagram %s", hash[:12])
			c.JSON(http.StatusOK, gin.H{"ok": true, "result": cached, "cached": true})
			return
		}
	}

	result, err := service.AnalyzeJSON(ctx, req.Diagram, provider, opts)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedDiagram) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if cacheable {
		if err := h.cache.Set(ctx, hash, result); err != nil {
			logger.LogWarnf("drc_analyze_http", "cache write failed: %v", err)
		}
	}
	var reportID string
	if h.history != nil {
		stored, err := h.history.Insert(ctx, hash, result)
		if err != nil {
			logger.LogWarnf("drc_analyze_http", "history write failed: %v", err)
		} else {
			reportID = stored.ID
		}
	}

	resp := gin.H{"ok": true, "result": result}
	if reportID != "" {
		resp["report_id"] = reportID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getReport(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "report history is not configured"})
		return
	}
	report, err := h.history.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": report})
}

func (h *Handler) listReports(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "report history is not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	reports, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "reports": reports})
}
