package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"almox/internal/dto"
	"almox/internal/model"
	"almox/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Product stub ──────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. Reads return copies so
// callers never alias the stored record; stock writes land on the store.
type stubProductRepo struct {
	products map[string]*model.Product
}

func newStubProductRepo(seed ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*model.Product)}
	for _, p := range seed {
		cp := *p
		r.products[p.Code] = &cp
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *p
	r.products[p.Code] = &cp
	return nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	p, ok := r.products[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	stored, ok := r.products[p.Code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Category = p.Category
	stored.Subcategory = p.Subcategory
	stored.Description = p.Description
	stored.Unit = p.Unit
	return nil
}

func (r *stubProductRepo) FindByCodeForUpdateTx(_ *gorm.DB, code string) (*model.Product, error) {
	return r.FindByCode(context.Background(), code)
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, code string, newStock decimal.Decimal) error {
	stored, ok := r.products[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Stock = newStock
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) stock(code string) decimal.Decimal {
	return r.products[code].Stock
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Exit stub ─────────────────────────────────────────────────────────────────

type stubExitRepo struct {
	exits   []*model.Exit
	items   []model.ExitItem
	history []model.ExitHistory
	nextID  int64
}

func newStubExitRepo() *stubExitRepo { return &stubExitRepo{nextID: 1} }

func (r *stubExitRepo) CreateTx(_ *gorm.DB, e *model.Exit) error {
	e.ID = r.nextID
	r.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	cp := *e
	r.exits = append(r.exits, &cp)
	return nil
}

func (r *stubExitRepo) CreateItemTx(_ *gorm.DB, item *model.ExitItem) error {
	item.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *item)
	return nil
}

func (r *stubExitRepo) CreateHistoryTx(_ *gorm.DB, h *model.ExitHistory) error {
	h.ID = int64(len(r.history) + 1)
	r.history = append(r.history, *h)
	return nil
}

func (r *stubExitRepo) FindByID(_ context.Context, id int64) (*model.Exit, error) {
	for _, e := range r.exits {
		if e.ID == id {
			cp := *e
			cp.Items = nil
			for _, it := range r.items {
				if it.ExitID == id {
					cp.Items = append(cp.Items, it)
				}
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExitRepo) List(_ context.Context, filter dto.ExitFilter) ([]model.Exit, int64, error) {
	matched := make([]model.Exit, 0, len(r.exits))
	for _, e := range r.exits {
		if filter.Destination != "" &&
			!strings.Contains(strings.ToLower(e.Destination), strings.ToLower(filter.Destination)) {
			continue
		}
		day := e.CreatedAt.UTC().Format("2006-01-02")
		if filter.DateFrom != "" && day < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && day > filter.DateTo {
			continue
		}
		matched = append(matched, *e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if filter.Sort == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *stubExitRepo) DB() *gorm.DB { return nil }

var _ repository.ExitRepository = (*stubExitRepo)(nil)

// ── Purchase order stub ───────────────────────────────────────────────────────

type stubPORepo struct {
	pos           map[int64]*model.PurchaseOrder
	items         map[int64][]model.POItem
	receipts      []*model.POReceipt
	receiptItems  []model.POReceiptItem
	nextPONumber  int64
	nextReceiptID int64
}

func newStubPORepo() *stubPORepo {
	return &stubPORepo{
		pos:           make(map[int64]*model.PurchaseOrder),
		items:         make(map[int64][]model.POItem),
		nextPONumber:  1,
		nextReceiptID: 1,
	}
}

func (r *stubPORepo) CreateTx(_ *gorm.DB, po *model.PurchaseOrder) error {
	po.PONumber = r.nextPONumber
	r.nextPONumber++
	if po.CreatedAt.IsZero() {
		po.CreatedAt = time.Now().UTC()
	}
	cp := *po
	cp.Items = nil
	r.pos[po.PONumber] = &cp
	return nil
}

func (r *stubPORepo) SetCodeTx(_ *gorm.DB, poNumber int64, code string) error {
	po, ok := r.pos[poNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	po.POCode = code
	return nil
}

func (r *stubPORepo) CreateItemTx(_ *gorm.DB, item *model.POItem) error {
	item.ID = int64(len(r.items[item.PONumber]) + 1)
	r.items[item.PONumber] = append(r.items[item.PONumber], *item)
	return nil
}

func (r *stubPORepo) FindByNumber(_ context.Context, poNumber int64) (*model.PurchaseOrder, error) {
	po, ok := r.pos[poNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *po
	cp.Items = append([]model.POItem(nil), r.items[poNumber]...)
	return &cp, nil
}

func (r *stubPORepo) FindForUpdateTx(_ *gorm.DB, poNumber int64) (*model.PurchaseOrder, error) {
	po, ok := r.pos[poNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *po
	return &cp, nil
}

func (r *stubPORepo) ItemsTx(_ *gorm.DB, poNumber int64) ([]model.POItem, error) {
	return append([]model.POItem(nil), r.items[poNumber]...), nil
}

func (r *stubPORepo) List(_ context.Context) ([]model.PurchaseOrder, error) {
	out := make([]model.PurchaseOrder, 0, len(r.pos))
	for _, po := range r.pos {
		out = append(out, *po)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPORepo) UpdateStatusTx(_ *gorm.DB, poNumber int64, status string) error {
	po, ok := r.pos[poNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	po.Status = status
	return nil
}

func (r *stubPORepo) MarkReceivedTx(_ *gorm.DB, poNumber int64, at time.Time) error {
	po, ok := r.pos[poNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	po.Status = model.POStatusReceived
	po.ReceivedAt = &at
	return nil
}

func (r *stubPORepo) CreateReceiptTx(_ *gorm.DB, rec *model.POReceipt) error {
	rec.ID = r.nextReceiptID
	r.nextReceiptID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	cp := *rec
	cp.Items = nil
	r.receipts = append(r.receipts, &cp)
	return nil
}

func (r *stubPORepo) CreateReceiptItemTx(_ *gorm.DB, item *model.POReceiptItem) error {
	item.ID = int64(len(r.receiptItems) + 1)
	r.receiptItems = append(r.receiptItems, *item)
	return nil
}

func (r *stubPORepo) DB() *gorm.DB { return nil }

var _ repository.PORepository = (*stubPORepo)(nil)

// ── Entry stub ────────────────────────────────────────────────────────────────

type stubEntryRepo struct {
	rows          []model.EntryHistory
	supplierNames map[string]string
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{supplierNames: make(map[string]string)}
}

func (r *stubEntryRepo) CreateTx(_ *gorm.DB, e *model.EntryHistory) error {
	e.ID = int64(len(r.rows) + 1)
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now().UTC()
	}
	r.rows = append(r.rows, *e)
	return nil
}

func (r *stubEntryRepo) ListWithSupplier(_ context.Context) ([]repository.EntryRow, error) {
	out := make([]repository.EntryRow, 0, len(r.rows))
	for _, e := range r.rows {
		row := repository.EntryRow{
			ID:           e.ID,
			ReceivedAt:   e.ReceivedAt,
			PONumber:     e.PONumber,
			SupplierCNPJ: e.SupplierCNPJ,
			ProductCode:  e.ProductCode,
			Description:  e.Description,
			Unit:         e.Unit,
			Qty:          e.Qty,
			UnitCost:     e.UnitCost,
			LineTotal:    e.LineTotal,
		}
		if name, ok := r.supplierNames[e.SupplierCNPJ]; ok {
			row.SupplierName = &name
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

var _ repository.EntryRepository = (*stubEntryRepo)(nil)

// ── Supplier stub ─────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[string]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[string]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if _, ok := r.suppliers[s.CNPJ]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *s
	r.suppliers[s.CNPJ] = &cp
	return nil
}

func (r *stubSupplierRepo) FindByCNPJ(_ context.Context, cnpj string) (*model.Supplier, error) {
	s, ok := r.suppliers[cnpj]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── User stub ─────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[string]*model.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
