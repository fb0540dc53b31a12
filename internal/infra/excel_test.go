package infra

import (
	"bytes"
	"testing"

	"almox/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEntriesWorkbook(t *testing.T) {
	name := "ACME Supplies"
	entries := []dto.EntryResponse{
		{
			ID:           1,
			ReceivedAt:   "2026-04-01T12:00:00Z",
			PONumber:     7,
			SupplierCNPJ: "11.222.333/0001-44",
			SupplierName: &name,
			ProductCode:  "P1",
			Description:  "hex bolt M8",
			Unit:         "un",
			Qty:          decimal.NewFromInt(5),
			UnitCost:     decimal.RequireFromString("2.00"),
			LineTotal:    decimal.RequireFromString("10.00"),
		},
		{
			ID:          2,
			ReceivedAt:  "2026-04-02T09:30:00Z",
			PONumber:    8,
			ProductCode: "P2",
			Qty:         decimal.NewFromInt(1),
			UnitCost:    decimal.NewFromInt(3),
			LineTotal:   decimal.NewFromInt(3),
		},
	}

	raw, err := EntriesWorkbook(entries)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Entries", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	supplier, err := f.GetCellValue("Entries", "E2")
	require.NoError(t, err)
	assert.Equal(t, "ACME Supplies", supplier)

	total, err := f.GetCellValue("Entries", "K2")
	require.NoError(t, err)
	assert.Equal(t, "10", total)
}
