package handler

import (
	"net/http"

	"almox/internal/dto"
	"almox/internal/service"

	"github.com/gin-gonic/gin"
)

type SuppliersHandler struct{ svc service.SupplierService }

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

// Register godoc
// @Summary Register a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param body body dto.RegisterSupplierRequest true "Supplier"
// @Success 201 {object} dto.SupplierResponse
// @Failure 409 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/suppliers [post]
func (h *SuppliersHandler) Register(c *gin.Context) {
	var req dto.RegisterSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List suppliers ordered by name
// @Tags suppliers
// @Produce json
// @Success 200 {object} dto.SupplierListResponse
// @Security BearerAuth
// @Router /api/suppliers [get]
func (h *SuppliersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one supplier by CNPJ
// @Tags suppliers
// @Produce json
// @Param cnpj path string true "Supplier CNPJ"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/suppliers/{cnpj} [get]
func (h *SuppliersHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("cnpj"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
