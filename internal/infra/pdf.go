package infra

// pdf.go — printable documents rendered with go-pdf/fpdf. Purchase orders are
// portrait A4 with supplier/buyer blocks and a paged items table; exit slips
// are landscape A4 for warehouse hand-off sheets. Both render into memory so
// handlers can stream the bytes straight to the client.

import (
	"bytes"
	"fmt"
	"time"

	"almox/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const poRowsPerPage = 18

// PurchaseOrderPDF renders a purchase order document.
func PurchaseOrderPDF(detail *dto.PODetailResponse) ([]byte, error) {
	h := detail.Header

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, fmt.Sprintf("Purchase Order %s", h.POCode), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Issued %s    Status: %s", formatDocDate(h.CreatedAt), h.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Supplier / buyer blocks ──────────────────────────────────────────────
	half := contentW / 2
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 6, "Supplier", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	partyLines(pdf, half, []string{
		strOr(h.SupplierName),
		"CNPJ: " + h.SupplierCNPJ,
		strOr(h.SupplierAddress),
		joinNonEmpty(strOr(h.SupplierNeighborhood), strOr(h.SupplierCity), strOr(h.SupplierState)),
		prefixed("CEP: ", h.SupplierCEP),
		prefixed("Contact: ", h.SupplierContact),
		prefixed("PIX: ", h.SupplierPix),
	})

	bottom := pdf.GetY()
	pdf.SetXY(12+half+4, top)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half-4, 6, "Buyer", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range nonEmpty([]string{
		strOr(h.BuyerName),
		prefixed("CNPJ: ", h.BuyerCNPJ),
		strOr(h.BuyerAddress),
		joinNonEmpty(strOr(h.BuyerNeighborhood), strOr(h.BuyerCity), strOr(h.BuyerState)),
		prefixed("CEP: ", h.BuyerCEP),
		prefixed("Contact: ", h.BuyerContact),
		prefixed("PIX: ", h.BuyerPix),
	}) {
		pdf.SetX(12 + half + 4)
		pdf.CellFormat(half-4, 5, line, "", 1, "L", false, 0, "")
	}
	if pdf.GetY() < bottom {
		pdf.SetY(bottom)
	}
	pdf.Ln(5)

	// ── Items table ──────────────────────────────────────────────────────────
	colCode := contentW * 0.14
	colDesc := contentW * 0.38
	colUnit := contentW * 0.10
	colQty := contentW * 0.12
	colPrice := contentW * 0.13
	colTotal := contentW * 0.13

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colCode, 6, "Code", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colDesc, 6, "Description", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colUnit, 6, "Unit", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, "Unit Price", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	writeHeader()

	for i, item := range detail.Items {
		if i > 0 && i%poRowsPerPage == 0 {
			pdf.AddPage()
			writeHeader()
		}
		desc := truncate(item.Description, 48)
		pdf.CellFormat(colCode, 6, item.ItemCode, "", 0, "L", false, 0, "")
		pdf.CellFormat(colDesc, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(colUnit, 6, item.Unit, "", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, item.Qty.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, item.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	total := orderTotal(detail.Items)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW-colTotal, 7, "ORDER TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, total.StringFixed(2), "T", 1, "R", false, 0, "")

	if h.Notes != nil && *h.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Notes: "+*h.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render purchase order: %w", err)
	}
	return buf.Bytes(), nil
}

// ExitSlipPDF renders the warehouse hand-off sheet for a stock exit.
func ExitSlipPDF(detail *dto.ExitDetailResponse) ([]byte, error) {
	e := detail.Exit

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 9, fmt.Sprintf("Stock Exit %s", e.ExitCode), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Date: %s    Destination: %s", formatDocDate(e.CreatedAt), e.Destination), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colCode := contentW * 0.14
	colDesc := contentW * 0.42
	colUnit := contentW * 0.10
	colQty := contentW * 0.12
	colCost := contentW * 0.11
	colTotal := contentW * 0.11

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colCode, 6, "Code", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colDesc, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colUnit, 6, "Unit", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colCost, 6, "Unit Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range detail.Items {
		desc := truncate(item.Description, 60)
		pdf.CellFormat(colCode, 6, item.ProductCode, "", 0, "L", false, 0, "")
		pdf.CellFormat(colDesc, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(colUnit, 6, item.Unit, "", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, item.Qty.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(colCost, 6, item.UnitCost.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, item.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if e.Notes != nil && *e.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Notes: "+*e.Notes, "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	half := contentW / 2
	pdf.CellFormat(half, 6, "Released by: ______________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Received by: ______________________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render exit slip: %w", err)
	}
	return buf.Bytes(), nil
}

func orderTotal(items []dto.POItemResponse) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

func partyLines(pdf *fpdf.Fpdf, width float64, lines []string) {
	for _, line := range nonEmpty(lines) {
		pdf.CellFormat(width, 5, line, "", 1, "L", false, 0, "")
	}
}

func formatDocDate(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format("02/01/2006 15:04")
}

// truncate caps a cell value at max characters, counting runes so multibyte
// descriptions are never cut mid-sequence.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func prefixed(prefix string, s *string) string {
	if s == nil || *s == "" {
		return ""
	}
	return prefix + *s
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " - "
		}
		out += p
	}
	return out
}

func nonEmpty(lines []string) []string {
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
