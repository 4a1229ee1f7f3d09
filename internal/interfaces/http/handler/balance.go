package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	societyapp "github.com/villaledger/backend/internal/application/society"
)

// BalanceHandler handles monthly balance API endpoints
type BalanceHandler struct {
	BaseHandler
	balanceService *societyapp.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *societyapp.BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// Generate godoc
// @Summary      Generate a monthly balance
// @Description  Compute the balance for a month: previous closing balance plus receipts minus expenses. Regenerating overwrites the stored figures for that month only; later months are not cascaded.
// @Tags         balances
// @Accept       json
// @Produce      json
// @Param        request body generateBalanceRequest true "Period to generate"
// @Success      200 {object} dto.Response{data=societyapp.BalanceView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/balances/generate [post]
func (h *BalanceHandler) Generate(c *gin.Context) {
	var req generateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	balance, err := h.balanceService.Generate(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

type generateBalanceRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

// Get godoc
// @Summary      Get a monthly balance
// @Tags         balances
// @Produce      json
// @Param        month query int true "Month (1-12)"
// @Param        year query int true "Year"
// @Success      200 {object} dto.Response{data=societyapp.BalanceView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/balances/lookup [get]
func (h *BalanceHandler) Get(c *gin.Context) {
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

	balance, err := h.balanceService.Get(c.Request.Context(), month, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

// List godoc
// @Summary      List monthly balances for a year
// @Description  Stored balances for the year in month order
// @Tags         balances
// @Produce      json
// @Param        year path int true "Year"
// @Success      200 {object} dto.Response{data=[]societyapp.BalanceView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/balances/{year} [get]
func (h *BalanceHandler) List(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	balances, err := h.balanceService.List(c.Request.Context(), year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balances)
}
