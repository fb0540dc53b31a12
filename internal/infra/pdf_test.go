package infra

import (
	"testing"
	"unicode/utf8"

	"almox/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestPurchaseOrderPDF(t *testing.T) {
	items := make([]dto.POItemResponse, 0, 40)
	for i := 0; i < 40; i++ { // forces a second page
		items = append(items, dto.POItemResponse{
			ItemCode:    "P1",
			Description: "hex bolt M8 zinc plated",
			Unit:        "un",
			Qty:         decimal.NewFromInt(10),
			UnitPrice:   decimal.RequireFromString("1.25"),
			LineTotal:   decimal.RequireFromString("12.50"),
		})
	}
	detail := &dto.PODetailResponse{
		Header: &dto.POHeaderResponse{
			PONumber:     1,
			POCode:       "PO000001",
			SupplierCNPJ: "11.222.333/0001-44",
			SupplierName: strp("ACME Supplies"),
			BuyerName:    strp("Almox Ltd"),
			CreatedAt:    "2026-04-01T12:00:00Z",
			Status:       "OPEN",
			Notes:        strp("deliver to dock 3"),
		},
		Items: items,
	}

	raw, err := PurchaseOrderPDF(detail)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestTruncate_RuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 48))

	// accented text is longer in bytes than in characters; the cut must land
	// on a character boundary, never inside a UTF-8 sequence
	long := "parafuso sextavado zincado métrico São Paulo açoável reforçado"
	got := truncate(long, 48)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 48, len([]rune(got)))
	assert.Equal(t, string([]rune(long)[:47])+"…", got)

	// exactly at the limit stays untouched
	assert.Equal(t, "café", truncate("café", 4))
}

func TestPurchaseOrderPDF_MultibyteDescriptions(t *testing.T) {
	detail := &dto.PODetailResponse{
		Header: &dto.POHeaderResponse{
			PONumber:     2,
			POCode:       "PO000002",
			SupplierCNPJ: "11.222.333/0001-44",
			CreatedAt:    "2026-04-01T12:00:00Z",
			Status:       "OPEN",
		},
		Items: []dto.POItemResponse{{
			ItemCode:    "P9",
			Description: "chave de fenda açoável com proteção térmica reforçada série industrial",
			Unit:        "un",
			Qty:         decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("9.90"),
			LineTotal:   decimal.RequireFromString("9.90"),
		}},
	}

	raw, err := PurchaseOrderPDF(detail)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestExitSlipPDF(t *testing.T) {
	detail := &dto.ExitDetailResponse{
		Exit: dto.ExitHeaderResponse{
			ID:          1,
			ExitCode:    "EX-1770000000000",
			Destination: "maintenance",
			CreatedAt:   "2026-04-01T12:00:00Z",
		},
		Items: []dto.ExitItemResponse{
			{
				ProductCode: "P1",
				Description: "hex bolt M8",
				Unit:        "un",
				Qty:         decimal.NewFromInt(3),
				UnitCost:    decimal.RequireFromString("1.25"),
				LineTotal:   decimal.RequireFromString("3.75"),
			},
		},
	}

	raw, err := ExitSlipPDF(detail)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
