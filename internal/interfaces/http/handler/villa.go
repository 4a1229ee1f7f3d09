package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	societyapp "github.com/villaledger/backend/internal/application/society"
	"github.com/villaledger/backend/internal/domain/society"
)

// VillaHandler handles villa-related API endpoints
type VillaHandler struct {
	BaseHandler
	villaService *societyapp.VillaService
}

// NewVillaHandler creates a new VillaHandler
func NewVillaHandler(villaService *societyapp.VillaService) *VillaHandler {
	return &VillaHandler{
		villaService: villaService,
	}
}

// Create godoc
// @Summary      Register a new villa
// @Description  Register a villa in the society. Villa numbers are unique.
// @Tags         villas
// @Accept       json
// @Produce      json
// @Param        request body societyapp.CreateVillaRequest true "Villa registration request"
// @Success      201 {object} dto.Response{data=societyapp.VillaView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas [post]
func (h *VillaHandler) Create(c *gin.Context) {
	var req societyapp.CreateVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	villa, err := h.villaService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, villa)
}

// GetByID godoc
// @Summary      Get villa by ID
// @Description  Retrieve a villa by its ID
// @Tags         villas
// @Produce      json
// @Param        id path string true "Villa ID" format(uuid)
// @Success      200 {object} dto.Response{data=societyapp.VillaView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas/{id} [get]
func (h *VillaHandler) GetByID(c *gin.Context) {
	villaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid villa ID format")
		return
	}

	villa, err := h.villaService.GetByID(c.Request.Context(), villaID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, villa)
}

// List godoc
// @Summary      List villas
// @Description  Retrieve all villas ordered by villa number
// @Tags         villas
// @Produce      json
// @Param        search query string false "Search by villa number or resident name"
// @Param        occupancy_type query string false "Occupancy filter" Enums(OWNER, TENANT, VACANT)
// @Param        sort query string false "Sort field (whitelisted, defaults to villa_number)"
// @Param        order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]societyapp.VillaView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas [get]
func (h *VillaHandler) List(c *gin.Context) {
	var filter society.VillaFilter
	filter.Search = c.Query("search")
	filter.OrderBy = c.Query("sort")
	filter.OrderDir = c.Query("order")
	if occupancy := c.Query("occupancy_type"); occupancy != "" {
		value := society.OccupancyType(occupancy)
		if !value.IsValid() {
			h.BadRequest(c, "Invalid occupancy type")
			return
		}
		filter.OccupancyType = &value
	}

	villas, err := h.villaService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, villas)
}

// Update godoc
// @Summary      Update a villa
// @Description  Edit villa number, resident name or occupancy. Omitted fields are unchanged.
// @Tags         villas
// @Accept       json
// @Produce      json
// @Param        id path string true "Villa ID" format(uuid)
// @Param        request body societyapp.UpdateVillaRequest true "Villa update request"
// @Success      200 {object} dto.Response{data=societyapp.VillaView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas/{id} [put]
func (h *VillaHandler) Update(c *gin.Context) {
	villaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid villa ID format")
		return
	}

	var req societyapp.UpdateVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	villa, err := h.villaService.Update(c.Request.Context(), villaID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, villa)
}

// Delete godoc
// @Summary      Delete a villa
// @Description  Remove a villa. Refused while ledger rows reference it.
// @Tags         villas
// @Produce      json
// @Param        id path string true "Villa ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /society/villas/{id} [delete]
func (h *VillaHandler) Delete(c *gin.Context) {
	villaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid villa ID format")
		return
	}

	if err := h.villaService.Delete(c.Request.Context(), villaID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
