package service

import (
	"context"
	"errors"

	"almox/internal/apierror"
	"almox/internal/dto"
	"almox/internal/model"
	"almox/internal/repository"

	"gorm.io/gorm"
)

type SupplierService interface {
	Register(ctx context.Context, req dto.RegisterSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, cnpj string) (*dto.SupplierResponse, error)
	List(ctx context.Context) (*dto.SupplierListResponse, error)
}

type supplierService struct {
	suppliers repository.SupplierRepository
}

func NewSupplierService(suppliers repository.SupplierRepository) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Register(ctx context.Context, req dto.RegisterSupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		CNPJ:         req.CNPJ,
		Name:         req.Name,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		CEP:          req.CEP,
		Seller:       req.Seller,
		Cellphone:    req.Cellphone,
		Pix:          req.Pix,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Errorf(apierror.Conflict, "supplier %s already exists", req.CNPJ)
		}
		return nil, err
	}
	resp := supplierResponse(sup)
	return &resp, nil
}

func (s *supplierService) Get(ctx context.Context, cnpj string) (*dto.SupplierResponse, error) {
	sup, err := s.suppliers.FindByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "supplier %s not found", cnpj)
		}
		return nil, err
	}
	resp := supplierResponse(sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) (*dto.SupplierListResponse, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, supplierResponse(&suppliers[i]))
	}
	return &dto.SupplierListResponse{Suppliers: out}, nil
}

func supplierResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		CNPJ:         s.CNPJ,
		Name:         s.Name,
		Address:      s.Address,
		Neighborhood: s.Neighborhood,
		City:         s.City,
		State:        s.State,
		CEP:          s.CEP,
		Seller:       s.Seller,
		Cellphone:    s.Cellphone,
		Pix:          s.Pix,
	}
}
