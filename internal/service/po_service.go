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

// POService owns the purchase order lifecycle. Status changes go through
// UpdateStatus for the settable states; RECEIVED is reachable only through
// Receive, which fans the order out into receipt, entry history and stock.
type POService interface {
	Create(ctx context.Context, req dto.CreatePORequest) (*dto.CreatePOResponse, error)
	List(ctx context.Context) (*dto.POListResponse, error)
	Get(ctx context.Context, poNumber int64) (*dto.PODetailResponse, error)
	UpdateStatus(ctx context.Context, poNumber int64, target string) (*dto.UpdatePOStatusResponse, error)
	Receive(ctx context.Context, poNumber int64) (*dto.ReceiveResult, error)
}

type poService struct {
	pos     repository.PORepository
	entries repository.EntryRepository
	ledger  StockLedger
}

func NewPOService(pos repository.PORepository, entries repository.EntryRepository, ledger StockLedger) POService {
	return &poService{pos: pos, entries: entries, ledger: ledger}
}

func (s *poService) Create(ctx context.Context, req dto.CreatePORequest) (*dto.CreatePOResponse, error) {
	// Item quantities must be strictly positive: a negative qty would turn the
	// receive fan-out into a stock decrement, and a zero qty would make the
	// order unreceivable since the ledger rejects zero deltas.
	for _, in := range req.Items {
		if !in.Qty.IsPositive() {
			return nil, apierror.Errorf(apierror.InvalidInput,
				"quantity for item %s must be greater than zero", in.Code)
		}
		if in.Price.IsNegative() {
			return nil, apierror.Errorf(apierror.InvalidInput,
				"price for item %s cannot be negative", in.Code)
		}
	}

	po := &model.PurchaseOrder{
		SupplierCNPJ:         req.SupplierCNPJ,
		SupplierName:         req.SupplierName,
		SupplierAddress:      req.SupplierAddress,
		SupplierNeighborhood: req.SupplierNeighborhood,
		SupplierCity:         req.SupplierCity,
		SupplierState:        req.SupplierState,
		SupplierCEP:          req.SupplierCEP,
		SupplierPix:          req.SupplierPix,
		SupplierContact:      req.SupplierContact,
		BuyerCNPJ:            req.BuyerCNPJ,
		BuyerName:            req.BuyerName,
		BuyerAddress:         req.BuyerAddress,
		BuyerNeighborhood:    req.BuyerNeighborhood,
		BuyerCity:            req.BuyerCity,
		BuyerState:           req.BuyerState,
		BuyerCEP:             req.BuyerCEP,
		BuyerPix:             req.BuyerPix,
		BuyerContact:         req.BuyerContact,
		Status:               model.POStatusOpen,
		Notes:                req.Notes,
	}

	err := runTx(ctx, s.pos.DB(), func(tx *gorm.DB) error {
		if err := s.pos.CreateTx(tx, po); err != nil {
			return err
		}
		// The display code derives from the assigned number, so it can only
		// be set once the insert has returned.
		po.POCode = fmt.Sprintf("PO%06d", po.PONumber)
		if err := s.pos.SetCodeTx(tx, po.PONumber, po.POCode); err != nil {
			return err
		}
		for _, in := range req.Items {
			item := model.POItem{
				PONumber:    po.PONumber,
				ItemCode:    in.Code,
				Description: in.Description,
				Unit:        in.Unit,
				Qty:         in.Qty,
				UnitPrice:   in.Price,
				LineTotal:   in.Qty.Mul(in.Price),
			}
			if err := s.pos.CreateItemTx(tx, &item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreatePOResponse{PONumber: po.PONumber, POCode: po.POCode}, nil
}

func (s *poService) List(ctx context.Context) (*dto.POListResponse, error) {
	pos, err := s.pos.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.POListItem, 0, len(pos))
	for i := range pos {
		po := &pos[i]
		items = append(items, dto.POListItem{
			PONumber:     po.PONumber,
			POCode:       po.POCode,
			SupplierName: po.SupplierName,
			CreatedAt:    po.CreatedAt.UTC().Format(time.RFC3339),
			Status:       po.Status,
		})
	}
	return &dto.POListResponse{PurchaseOrders: items}, nil
}

func (s *poService) Get(ctx context.Context, poNumber int64) (*dto.PODetailResponse, error) {
	po, err := s.pos.FindByNumber(ctx, poNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "purchase order %d not found", poNumber)
		}
		return nil, err
	}
	return poDetail(po), nil
}

// settable are the statuses a client may request directly. RECEIVED is
// deliberately absent.
var settable = map[string]bool{
	model.POStatusOpen:      true,
	model.POStatusApproved:  true,
	model.POStatusCancelled: true,
}

func (s *poService) UpdateStatus(ctx context.Context, poNumber int64, target string) (*dto.UpdatePOStatusResponse, error) {
	if !settable[target] {
		return nil, apierror.Errorf(apierror.InvalidInput,
			"invalid status %q: must be one of OPEN, APPROVED, CANCELLED", target)
	}

	err := runTx(ctx, s.pos.DB(), func(tx *gorm.DB) error {
		po, err := s.pos.FindForUpdateTx(tx, poNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.Errorf(apierror.NotFound, "purchase order %d not found", poNumber)
			}
			return err
		}
		if po.Status != model.POStatusOpen {
			return apierror.Errorf(apierror.InvalidTransition,
				"purchase order %d is %s: only OPEN orders can change status", poNumber, po.Status)
		}
		return s.pos.UpdateStatusTx(tx, poNumber, target)
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdatePOStatusResponse{Success: true, NewStatus: target}, nil
}

func (s *poService) Receive(ctx context.Context, poNumber int64) (*dto.ReceiveResult, error) {
	var result *dto.ReceiveResult

	err := runTx(ctx, s.pos.DB(), func(tx *gorm.DB) error {
		po, err := s.pos.FindForUpdateTx(tx, poNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.Errorf(apierror.NotFound, "purchase order %d not found", poNumber)
			}
			return err
		}
		// The row lock above makes this check race-free: two concurrent
		// receive calls serialize here and the loser sees RECEIVED.
		if po.Status != model.POStatusApproved {
			return apierror.Errorf(apierror.InvalidTransition,
				"purchase order %d is %s: only APPROVED orders can be received", poNumber, po.Status)
		}

		items, err := s.pos.ItemsTx(tx, poNumber)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apierror.Errorf(apierror.EmptyOrder,
				"purchase order %d has no items to receive", poNumber)
		}

		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.LineTotal)
		}

		receipt := &model.POReceipt{
			PONumber:     poNumber,
			SupplierCNPJ: po.SupplierCNPJ,
			SupplierName: po.SupplierName,
			BuyerCNPJ:    po.BuyerCNPJ,
			BuyerName:    po.BuyerName,
			TotalValue:   total,
			Notes:        po.Notes,
		}
		if err := s.pos.CreateReceiptTx(tx, receipt); err != nil {
			return err
		}

		for _, it := range items {
			ritem := model.POReceiptItem{
				POReceivedID: receipt.ID,
				ProductCode:  it.ItemCode,
				Description:  it.Description,
				Unit:         it.Unit,
				Qty:          it.Qty,
				UnitPrice:    it.UnitPrice,
				LineTotal:    it.LineTotal,
			}
			if err := s.pos.CreateReceiptItemTx(tx, &ritem); err != nil {
				return err
			}
			entry := model.EntryHistory{
				PONumber:     poNumber,
				SupplierCNPJ: po.SupplierCNPJ,
				ProductCode:  it.ItemCode,
				Description:  it.Description,
				Unit:         it.Unit,
				Qty:          it.Qty,
				UnitCost:     it.UnitPrice,
				LineTotal:    it.LineTotal,
			}
			if err := s.entries.CreateTx(tx, &entry); err != nil {
				return err
			}
			if _, err := s.ledger.Apply(tx, it.ItemCode, it.Qty); err != nil {
				return err
			}
		}

		if err := s.pos.MarkReceivedTx(tx, poNumber, time.Now().UTC()); err != nil {
			return err
		}

		result = &dto.ReceiveResult{
			Status:        model.POStatusReceived,
			PONumber:      poNumber,
			POReceivedID:  receipt.ID,
			TotalReceived: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func poDetail(po *model.PurchaseOrder) *dto.PODetailResponse {
	var receivedAt *string
	if po.ReceivedAt != nil {
		v := po.ReceivedAt.UTC().Format(time.RFC3339)
		receivedAt = &v
	}
	header := &dto.POHeaderResponse{
		PONumber:             po.PONumber,
		POCode:               po.POCode,
		SupplierCNPJ:         po.SupplierCNPJ,
		SupplierName:         po.SupplierName,
		SupplierAddress:      po.SupplierAddress,
		SupplierNeighborhood: po.SupplierNeighborhood,
		SupplierCity:         po.SupplierCity,
		SupplierState:        po.SupplierState,
		SupplierCEP:          po.SupplierCEP,
		SupplierPix:          po.SupplierPix,
		SupplierContact:      po.SupplierContact,
		BuyerCNPJ:            po.BuyerCNPJ,
		BuyerName:            po.BuyerName,
		BuyerAddress:         po.BuyerAddress,
		BuyerNeighborhood:    po.BuyerNeighborhood,
		BuyerCity:            po.BuyerCity,
		BuyerState:           po.BuyerState,
		BuyerCEP:             po.BuyerCEP,
		BuyerPix:             po.BuyerPix,
		BuyerContact:         po.BuyerContact,
		CreatedAt:            po.CreatedAt.UTC().Format(time.RFC3339),
		ReceivedAt:           receivedAt,
		Status:               po.Status,
		Notes:                po.Notes,
	}
	items := make([]dto.POItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.POItemResponse{
			ItemCode:    it.ItemCode,
			Description: it.Description,
			Unit:        it.Unit,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.PODetailResponse{Header: header, Items: items}
}
