package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"almox/internal/apierror"
	"almox/internal/dto"
	"almox/internal/infra"
	"almox/internal/service"

	"github.com/gin-gonic/gin"
)

type POHandler struct{ svc service.POService }

func NewPOHandler(svc service.POService) *POHandler { return &POHandler{svc: svc} }

// Create godoc
// @Summary Create a purchase order (status OPEN)
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param body body dto.CreatePORequest true "Purchase order"
// @Success 201 {object} dto.CreatePOResponse
// @Failure 422 {object} apierror.ValidationError
// @Security BearerAuth
// @Router /api/purchase-orders [post]
func (h *POHandler) Create(c *gin.Context) {
	var req dto.CreatePORequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List purchase orders, newest first
// @Tags purchase-orders
// @Produce json
// @Success 200 {object} dto.POListResponse
// @Security BearerAuth
// @Router /api/purchase-orders [get]
func (h *POHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one purchase order with its items
// @Tags purchase-orders
// @Produce json
// @Param po_number path int true "PO number"
// @Success 200 {object} dto.PODetailResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/purchase-orders/{po_number} [get]
func (h *POHandler) Get(c *gin.Context) {
	poNumber, err := strconv.ParseInt(c.Param("po_number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid purchase order number"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), poNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Change the status of an OPEN purchase order
// @Description Accepts OPEN, APPROVED or CANCELLED. RECEIVED is set exclusively by the receive endpoint.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param po_number path int true "PO number"
// @Param body body dto.UpdatePOStatusRequest true "Target status"
// @Success 200 {object} dto.UpdatePOStatusResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/purchase-orders/{po_number}/status [put]
func (h *POHandler) UpdateStatus(c *gin.Context) {
	poNumber, err := strconv.ParseInt(c.Param("po_number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid purchase order number"))
		return
	}
	var req dto.UpdatePOStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), poNumber, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receive godoc
// @Summary Receive an APPROVED purchase order
// @Description Atomically records the receipt, appends entry history rows and increments stock for every line item.
// @Tags purchase-orders
// @Produce json
// @Param po_number path int true "PO number"
// @Success 200 {object} dto.ReceiveResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/purchase-orders/{po_number}/receive [put]
func (h *POHandler) Receive(c *gin.Context) {
	poNumber, err := strconv.ParseInt(c.Param("po_number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid purchase order number"))
		return
	}
	result, err := h.svc.Receive(c.Request.Context(), poNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReceiveResponse{
		Success: true,
		Message: fmt.Sprintf("purchase order %d received", poNumber),
		Data:    result,
	})
}

// PDF godoc
// @Summary Download the printable purchase order document
// @Tags purchase-orders
// @Produce application/pdf
// @Param po_number path int true "PO number"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/purchase-orders/{po_number}/pdf [get]
func (h *POHandler) PDF(c *gin.Context) {
	poNumber, err := strconv.ParseInt(c.Param("po_number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid purchase order number"))
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), poNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	raw, err := infra.PurchaseOrderPDF(detail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", detail.Header.POCode))
	c.Data(http.StatusOK, "application/pdf", raw)
}
