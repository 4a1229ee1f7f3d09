package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	societyapp "github.com/villaledger/backend/internal/application/society"
	"github.com/villaledger/backend/internal/domain/society"
)

// ExpenseHandler handles society expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *societyapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *societyapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create godoc
// @Summary      Record an expense
// @Description  Record a society expense against a month and year
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body societyapp.CreateExpenseRequest true "Expense record request"
// @Success      201 {object} dto.Response{data=societyapp.ExpenseView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req societyapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetByID godoc
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} dto.Response{data=societyapp.ExpenseView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// List godoc
// @Summary      List expenses
// @Description  Expenses ordered by expense date, newest first
// @Tags         expenses
// @Produce      json
// @Param        month query int false "Filter by month (1-12)"
// @Param        year query int false "Filter by year"
// @Param        category query string false "Filter by expense category"
// @Param        sort query string false "Sort field (whitelisted, defaults to expense_date)"
// @Param        order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]societyapp.ExpenseView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter society.ExpenseFilter
	filter.OrderBy = c.Query("sort")
	filter.OrderDir = c.Query("order")
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid month")
			return
		}
		filter.Month = &month
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		filter.Year = &year
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	expenses, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// Update godoc
// @Summary      Correct an expense
// @Description  Overwrite fields of an existing expense. Omitted fields are unchanged.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body societyapp.UpdateExpenseRequest true "Expense correction request"
// @Success      200 {object} dto.Response{data=societyapp.ExpenseView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req societyapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete godoc
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), expenseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary godoc
// @Summary      Sum expenses for a period
// @Description  Total expense amount recorded against a month and year
// @Tags         expenses
// @Produce      json
// @Param        month query int true "Month (1-12)"
// @Param        year query int true "Year"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
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

	total, err := h.expenseService.SumForPeriod(c.Request.Context(), month, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"month": month,
		"year":  year,
		"total": total,
	})
}
