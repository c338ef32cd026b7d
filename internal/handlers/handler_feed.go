package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feedHandler serves the flattened transaction feed.
type feedHandler struct {
	feedService portssvc.FeedSvcFacade
}

func newFeedHandler(fs portssvc.FeedSvcFacade) *feedHandler {
	return &feedHandler{feedService: fs}
}

// registerFeedRoutes registers the transaction feed route.
func registerFeedRoutes(rg *gin.RouterGroup, feedService portssvc.FeedSvcFacade) {
	h := newFeedHandler(feedService)
	rg.GET("/transactions", h.listTransactions)
}

func (h *feedHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	params := dto.FeedParams{
		Search:    c.Query("search"),
		AccountID: c.Query("accountId"),
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if from, ok := parseDateParam(c, "from", time.Time{}); ok {
		if !from.IsZero() {
			params.From = &from
		}
	} else {
		return
	}
	if to, ok := parseDateParam(c, "to", time.Time{}); ok {
		if !to.IsZero() {
			params.To = &to
		}
	} else {
		return
	}

	resp, err := h.feedService.ListTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
