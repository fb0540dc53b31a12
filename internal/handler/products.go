package handler

import (
	"net/http"

	"almox/internal/dto"
	"almox/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Register godoc
// @Summary Register a product
// @Tags products
// @Accept json
// @Produce json
// @Param body body dto.RegisterProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Failure 409 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/products [post]
func (h *ProductsHandler) Register(c *gin.Context) {
	var req dto.RegisterProductRequest
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
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} dto.ProductListResponse
// @Security BearerAuth
// @Router /api/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one product by code
// @Tags products
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/products/{code} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update product attributes (stock excluded)
// @Tags products
// @Accept json
// @Produce json
// @Param code path string true "Product code"
// @Param body body dto.UpdateProductRequest true "Attributes"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/products/{code} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	req.Code = c.Param("code")
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lookup godoc
// @Summary Public product lookup (cached)
// @Tags lookup
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} dto.LookupResponse
// @Failure 404 {object} apierror.APIError
// @Router /lookup/{code} [get]
func (h *ProductsHandler) Lookup(c *gin.Context) {
	resp, err := h.svc.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
