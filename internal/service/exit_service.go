package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"almox/internal/apierror"
	"almox/internal/dto"
	"almox/internal/model"
	"almox/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExitService manages outbound stock movements. Every exit is all-or-nothing:
// either every line item is decremented and audited, or nothing changes.
type ExitService interface {
	Create(ctx context.Context, actorID *int64, req dto.CreateExitRequest) (*dto.ExitDetailResponse, error)
	List(ctx context.Context, filter dto.ExitFilter) (*dto.ExitListResponse, error)
	Get(ctx context.Context, id int64) (*dto.ExitDetailResponse, error)
}

type exitService struct {
	exits    repository.ExitRepository
	products repository.ProductRepository
	ledger   StockLedger
}

func NewExitService(exits repository.ExitRepository, products repository.ProductRepository, ledger StockLedger) ExitService {
	return &exitService{exits: exits, products: products, ledger: ledger}
}

func (s *exitService) Create(ctx context.Context, actorID *int64, req dto.CreateExitRequest) (*dto.ExitDetailResponse, error) {
	// Validate every line before touching the database: any bad item aborts
	// the whole request with no stock applied. The ledger re-checks under the
	// row lock inside the transaction, so concurrent writers cannot slip
	// through this pre-flight.
	for _, item := range req.Items {
		if !item.Qty.IsPositive() {
			return nil, apierror.Errorf(apierror.InvalidInput,
				"quantity for product %s must be greater than zero", item.ProductCode)
		}
		p, err := s.products.FindByCode(ctx, item.ProductCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Errorf(apierror.NotFound, "product %s not found", item.ProductCode)
			}
			return nil, err
		}
		if p.Stock.LessThan(item.Qty) {
			return nil, apierror.Errorf(apierror.InsufficientStock,
				"insufficient stock for product %s: available %s, requested %s",
				item.ProductCode, p.Stock.String(), item.Qty.String())
		}
	}

	exit := &model.Exit{
		ExitCode:    newExitCode(),
		Destination: req.Destination,
		CreatedBy:   actorID,
		Notes:       req.Notes,
	}
	items := make([]model.ExitItem, 0, len(req.Items))

	err := runTx(ctx, s.exits.DB(), func(tx *gorm.DB) error {
		if err := s.exits.CreateTx(tx, exit); err != nil {
			return err
		}
		for _, in := range req.Items {
			change, err := s.ledger.Apply(tx, in.ProductCode, in.Qty.Neg())
			if err != nil {
				return err
			}
			unitCost := decimal.Zero
			if in.UnitCost != nil {
				unitCost = *in.UnitCost
			}
			item := model.ExitItem{
				ExitID:      exit.ID,
				ProductCode: in.ProductCode,
				Description: change.Product.Description,
				Unit:        change.Product.Unit,
				Qty:         in.Qty,
				UnitCost:    unitCost,
				LineTotal:   in.Qty.Mul(unitCost),
			}
			if err := s.exits.CreateItemTx(tx, &item); err != nil {
				return err
			}
			hist := model.ExitHistory{
				ExitID:      exit.ID,
				ProductCode: in.ProductCode,
				Qty:         in.Qty,
				ChangedBy:   actorID,
				Action:      "CREATE_EXIT",
			}
			if err := s.exits.CreateHistoryTx(tx, &hist); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	exit.Items = items
	return exitDetail(exit), nil
}

func (s *exitService) List(ctx context.Context, filter dto.ExitFilter) (*dto.ExitListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Sort == "" {
		filter.Sort = "desc"
	}

	exits, total, err := s.exits.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := make([]dto.ExitHeaderResponse, 0, len(exits))
	for i := range exits {
		headers = append(headers, exitHeader(&exits[i]))
	}
	return &dto.ExitListResponse{
		Success: true,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Data:    headers,
	}, nil
}

func (s *exitService) Get(ctx context.Context, id int64) (*dto.ExitDetailResponse, error) {
	exit, err := s.exits.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "exit %d not found", id)
		}
		return nil, err
	}
	return exitDetail(exit), nil
}

// newExitCode produces the human-facing exit identifier. Millisecond
// resolution keeps codes unique in practice; the unique index on exit_code
// backs it up.
func newExitCode() string {
	return fmt.Sprintf("EX-%d", time.Now().UTC().UnixMilli())
}

func exitHeader(e *model.Exit) dto.ExitHeaderResponse {
	return dto.ExitHeaderResponse{
		ID:          e.ID,
		ExitCode:    e.ExitCode,
		Destination: e.Destination,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		Notes:       e.Notes,
	}
}

func exitDetail(e *model.Exit) *dto.ExitDetailResponse {
	items := make([]dto.ExitItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, dto.ExitItemResponse{
			ProductCode: it.ProductCode,
			Description: it.Description,
			Unit:        it.Unit,
			Qty:         it.Qty,
			UnitCost:    it.UnitCost,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.ExitDetailResponse{Exit: exitHeader(e), Items: items}
}
