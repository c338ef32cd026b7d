package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests for journal entries.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newEntryHandler(ls portssvc.LedgerSvcFacade) *entryHandler {
	return &entryHandler{ledgerService: ls}
}

// registerEntryRoutes registers routes related to journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newEntryHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tenant scope not resolved"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to create entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) getEntry(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	entryID := c.Param("id")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to retrieve entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)

	params := dto.ListEntriesParams{}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	params.IncludeReversals, _ = strconv.ParseBool(c.DefaultQuery("includeReversals", "false"))
	params.IncludeLines, _ = strconv.ParseBool(c.DefaultQuery("includeLines", "false"))

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list entries", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to list entries"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *entryHandler) updateEntry(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	entryID := c.Param("id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), tenantID, entryID, req, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) postEntry(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	entryID := c.Param("id")

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to post entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to post entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	entryID := c.Param("id")

	reversal, err := h.ledgerService.ReverseEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to reverse entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to reverse entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	entryID := c.Param("id")

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), tenantID, entryID, userID); err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to delete entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to delete entry"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
