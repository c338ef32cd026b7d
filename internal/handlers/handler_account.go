package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizsuite/ledger_app/internal/apperrors"
	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/dto"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.POST("/:id/deactivate", h.deactivateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tenant scope not resolved"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account code", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create account"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)

	params := dto.ListAccountsParams{}
	if t := c.Query("type"); t != "" {
		params.AccountType = &t
	}
	if activeStr := c.Query("activeOnly"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activeOnly value"})
			return
		}
		params.ActiveOnly = &active
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list accounts", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to list accounts"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	accountID := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, accountID, req, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to update account", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to update account"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	accountID := c.Param("id")

	if err := h.accountService.DeactivateAccount(c.Request.Context(), tenantID, accountID, userID); err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate account", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to deactivate account"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	accountID := c.Param("id")

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, accountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrReferentialIntegrity) {
			// The account stays present and unchanged; the caller must deal
			// with the referencing lines first.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to delete account", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
