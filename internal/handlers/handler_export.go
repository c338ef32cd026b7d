package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/bizsuite/ledger_app/internal/core/ports/services"
	"github.com/bizsuite/ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler serves CSV downloads of the tenant's ledger.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers the export route.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)
	rg.GET("/export/csv", h.exportCSV)
}

func (h *exportHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	data, err := h.exportService.ExportCSV(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to export CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export ledger"})
		return
	}

	filename := "ledger-" + time.Now().Format(time.DateOnly) + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
