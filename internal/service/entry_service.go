package service

import (
	"context"
	"time"

	"almox/internal/dto"
	"almox/internal/repository"
)

// EntryService reads the append-only entries history. Rows are written solely
// by the PO receipt flow; nothing here mutates.
type EntryService interface {
	List(ctx context.Context) (*dto.EntryListResponse, error)
}

type entryService struct {
	entries repository.EntryRepository
}

func NewEntryService(entries repository.EntryRepository) EntryService {
	return &entryService{entries: entries}
}

func (s *entryService) List(ctx context.Context) (*dto.EntryListResponse, error) {
	rows, err := s.entries.ListWithSupplier(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.EntryResponse{
			ID:           row.ID,
			ReceivedAt:   row.ReceivedAt.UTC().Format(time.RFC3339),
			PONumber:     row.PONumber,
			SupplierCNPJ: row.SupplierCNPJ,
			SupplierName: row.SupplierName,
			ProductCode:  row.ProductCode,
			Description:  row.Description,
			Unit:         row.Unit,
			Qty:          row.Qty,
			UnitCost:     row.UnitCost,
			LineTotal:    row.LineTotal,
		})
	}
	return &dto.EntryListResponse{Entries: out}, nil
}
