package infra

import (
	"fmt"
	"time"

	"almox/internal/dto"

	"github.com/xuri/excelize/v2"
)

var entryColumns = []string{
	"ID", "Received At", "PO Number", "Supplier CNPJ", "Supplier",
	"Product Code", "Description", "Unit", "Qty", "Unit Cost", "Line Total",
}

// EntriesWorkbook renders the entries history as an XLSX workbook in memory.
// Quantities and money land as numbers so spreadsheet formulas work on them.
func EntriesWorkbook(entries []dto.EntryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entries"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range entryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("excel: header: %w", err)
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(entryColumns), 1)
		f.SetCellStyle(sheet, "A1", last, style)
	}

	for i, e := range entries {
		row := i + 2
		receivedAt := e.ReceivedAt
		if t, err := time.Parse(time.RFC3339, e.ReceivedAt); err == nil {
			receivedAt = t.Format("02/01/2006 15:04")
		}
		qty, _ := e.Qty.Float64()
		unitCost, _ := e.UnitCost.Float64()
		lineTotal, _ := e.LineTotal.Float64()

		values := []interface{}{
			e.ID, receivedAt, e.PONumber, e.SupplierCNPJ, strOr(e.SupplierName),
			e.ProductCode, e.Description, e.Unit, qty, unitCost, lineTotal,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: row %d: %w", row, err)
			}
		}
	}

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "D", "E", 20)
	f.SetColWidth(sheet, "G", "G", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
