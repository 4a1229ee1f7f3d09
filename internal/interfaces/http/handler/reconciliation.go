package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	societyapp "github.com/villaledger/backend/internal/application/society"
)

// ReconciliationHandler handles pending-dues reporting endpoints
type ReconciliationHandler struct {
	BaseHandler
	reconciliationService *societyapp.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(reconciliationService *societyapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// PendingByVilla godoc
// @Summary      Pending dues for a villa
// @Description  Walks every period from the villa's first recorded payment (or January of the current year) to now, comparing recurring charges against the expected standard amount, and appends unsettled one-time charges as a cumulative entry.
// @Tags         reconciliation
// @Produce      json
// @Param        id path string true "Villa ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]societyapp.PendingPeriod}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas/{id}/pending [get]
func (h *ReconciliationHandler) PendingByVilla(c *gin.Context) {
	villaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid villa ID format")
		return
	}

	pending, err := h.reconciliationService.PendingMaintenancePayments(c.Request.Context(), villaID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pending)
}

// StandardAmount godoc
// @Summary      Standard maintenance amount for a period
// @Description  The most common receivable amount among the period's maintenance rows. Falls back to the previous period, then to the configured default.
// @Tags         reconciliation
// @Produce      json
// @Param        month query int true "Month (1-12)"
// @Param        year query int true "Year"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/reconciliation/standard-amount [get]
func (h *ReconciliationHandler) StandardAmount(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Invalid month")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	amount, err := h.reconciliationService.StandardMaintenanceAmount(c.Request.Context(), month, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"month":  month,
		"year":   year,
		"amount": amount,
	})
}

// CrossMonth godoc
// @Summary      Cross-month payments received in a period
// @Description  Payments received during the calendar month but designated for a different period
// @Tags         reconciliation
// @Produce      json
// @Param        month query int true "Month (1-12)"
// @Param        year query int true "Year"
// @Success      200 {object} dto.Response{data=[]societyapp.CrossMonthRecord}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/reconciliation/cross-month [get]
func (h *ReconciliationHandler) CrossMonth(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Invalid month")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	records, err := h.reconciliationService.CrossMonthPayments(c.Request.Context(), month, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// VillaStructure godoc
// @Summary      Full per-villa payment structure
// @Description  Every villa with its payments grouped per category, including latest payment, totals and status
// @Tags         reconciliation
// @Produce      json
// @Success      200 {object} dto.Response{data=[]societyapp.VillaProjection}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/reconciliation/villa-structure [get]
func (h *ReconciliationHandler) VillaStructure(c *gin.Context) {
	projections, err := h.reconciliationService.AllWithVillaStructure(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, projections)
}
