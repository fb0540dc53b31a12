package handler

import (
	"fmt"
	"net/http"
	"time"

	"almox/internal/infra"
	"almox/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EntriesHandler struct{ svc service.EntryService }

func NewEntriesHandler(svc service.EntryService) *EntriesHandler {
	return &EntriesHandler{svc: svc}
}

// List godoc
// @Summary List entries history with supplier names resolved
// @Tags entries
// @Produce json
// @Success 200 {object} dto.EntryListResponse
// @Security BearerAuth
// @Router /api/entries [get]
func (h *EntriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Download the entries history as an XLSX workbook
// @Tags entries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /api/entries/export [get]
func (h *EntriesHandler) Export(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	raw, err := infra.EntriesWorkbook(resp.Entries)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("entries_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, raw)
}
