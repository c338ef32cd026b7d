package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	portsrepo "github.com/bizsuite/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles balance queries and financial statements.
type reportingHandler struct {
	balanceService   portssvc.BalanceSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(bs portssvc.BalanceSvcFacade, rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{balanceService: bs, reportingService: rs}
}

// registerReportingRoutes registers balance and report routes.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(balanceService, reportingService)

	rg.GET("/balances", h.getBalances)
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// parseDateParam reads a query parameter as a date, accepting date-only or
// RFC3339 formats. A missing parameter yields the fallback.
func parseDateParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date"})
	return time.Time{}, false
}

func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	// cached=true serves the last mutation-triggered snapshot without
	// touching the database.
	if c.Query("cached") == "true" {
		if rows, ok := h.balanceService.CachedBalances(tenantID); ok {
			c.JSON(http.StatusOK, gin.H{"balances": rows, "cached": true})
			return
		}
	}

	period := portsrepo.BalancePeriod{}
	if from, ok := parseDateParam(c, "from", time.Time{}); ok {
		if !from.IsZero() {
			period.From = &from
		}
	} else {
		return
	}
	if to, ok := parseDateParam(c, "to", time.Time{}); ok {
		if !to.IsZero() {
			period.To = &to
		}
	} else {
		return
	}

	rows, err := h.balanceService.AccountBalances(c.Request.Context(), tenantID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchemaMismatch) {
			// Ladder exhausted: answer with what we have plus a warning
			// instead of failing the whole page.
			logger.Warn("Balance query degraded by schema mismatch", slog.String("tenant_id", tenantID))
			c.JSON(http.StatusOK, gin.H{"balances": rows, "warning": "schema mismatch: balances incomplete"})
			return
		}
		logger.Error("Failed to compute balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": rows})
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	asOf, ok := parseDateParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, asOf, userID)
	if err != nil {
		h.reportError(c, err, "trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	asOf, ok := parseDateParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, asOf, userID)
	if err != nil {
		h.reportError(c, err, "balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	now := time.Now()
	from, ok := parseDateParam(c, "from", now.AddDate(0, -1, 0))
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to", now)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, from, to, userID)
	if err != nil {
		h.reportError(c, err, "profit and loss")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getCashFlow(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	asOf, ok := parseDateParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), tenantID, asOf, userID)
	if err != nil {
		h.reportError(c, err, "cash flow")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) reportError(c *gin.Context, err error, reportName string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrSchemaMismatch) {
		logger.Warn("Report degraded by schema mismatch", slog.String("report", reportName))
		c.JSON(http.StatusOK, gin.H{"warning": "schema mismatch: report incomplete"})
		return
	}
	logger.Error("Failed to generate report", slog.String("report", reportName), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + reportName})
}
