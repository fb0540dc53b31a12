package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"almox/internal/apierror"
	"almox/internal/dto"
	"almox/internal/infra"
	"almox/internal/middleware"
	"almox/internal/service"

	"github.com/gin-gonic/gin"
)

type ExitsHandler struct{ svc service.ExitService }

func NewExitsHandler(svc service.ExitService) *ExitsHandler { return &ExitsHandler{svc: svc} }

// Create godoc
// @Summary Register a stock exit
// @Description Decrements stock for every line item atomically; any failing item aborts the whole exit.
// @Tags exits
// @Accept json
// @Produce json
// @Param body body dto.CreateExitRequest true "Exit"
// @Success 201 {object} dto.ExitDetailResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/exits [post]
func (h *ExitsHandler) Create(c *gin.Context) {
	var req dto.CreateExitRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var actorID *int64
	if claims := middleware.GetClaims(c); claims != nil {
		actorID = &claims.UserID
	}

	resp, err := h.svc.Create(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List exits with filters and pagination
// @Tags exits
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 500)"
// @Param destination query string false "Destination substring filter"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param sort query string false "asc or desc by creation date"
// @Success 200 {object} dto.ExitListResponse
// @Security BearerAuth
// @Router /api/exits [get]
func (h *ExitsHandler) List(c *gin.Context) {
	var filter dto.ExitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one exit with its items
// @Tags exits
// @Produce json
// @Param id path int true "Exit ID"
// @Success 200 {object} dto.ExitDetailResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/exits/{id} [get]
func (h *ExitsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid exit id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF godoc
// @Summary Download the printable exit slip
// @Tags exits
// @Produce application/pdf
// @Param id path int true "Exit ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /api/exits/{id}/pdf [get]
func (h *ExitsHandler) PDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid exit id"))
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	raw, err := infra.ExitSlipPDF(detail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", detail.Exit.ExitCode))
	c.Data(http.StatusOK, "application/pdf", raw)
}
