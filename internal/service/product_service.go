package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"almox/internal/apierror"
	"almox/internal/dto"
	"almox/internal/model"
	"almox/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// lookupTTL keeps public lookup responses hot without letting stale stock
// figures live for long.
const lookupTTL = 60 * time.Second

// ProductService covers catalog CRUD plus the public cached lookup. Stock is
// intentionally absent from Update: only the ledger writes it.
type ProductService interface {
	Register(ctx context.Context, req dto.RegisterProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, code string) (*dto.ProductResponse, error)
	List(ctx context.Context) (*dto.ProductListResponse, error)
	Update(ctx context.Context, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Lookup(ctx context.Context, code string) (*dto.LookupResponse, error)
}

type productService struct {
	products repository.ProductRepository
	cache    *redis.Client // nil disables caching
}

func NewProductService(products repository.ProductRepository, cache *redis.Client) ProductService {
	return &productService{products: products, cache: cache}
}

func (s *productService) Register(ctx context.Context, req dto.RegisterProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Code:        req.Code,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Unit:        req.Unit,
		Stock:       req.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Errorf(apierror.Conflict, "product %s already exists", req.Code)
		}
		return nil, err
	}
	resp := productResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, code string) (*dto.ProductResponse, error) {
	p, err := s.products.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "product %s not found", code)
		}
		return nil, err
	}
	resp := productResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productResponse(&products[i]))
	}
	return &dto.ProductListResponse{Products: out}, nil
}

func (s *productService) Update(ctx context.Context, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "product %s not found", req.Code)
		}
		return nil, err
	}

	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Description = req.Description
	p.Unit = req.Unit
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateLookup(ctx, req.Code)

	resp := productResponse(p)
	return &resp, nil
}

func (s *productService) Lookup(ctx context.Context, code string) (*dto.LookupResponse, error) {
	key := lookupKey(code)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached dto.LookupResponse
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("lookup cache read failed")
		}
	}

	p, err := s.products.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Errorf(apierror.NotFound, "product %s not found", code)
		}
		return nil, err
	}
	resp := &dto.LookupResponse{
		Code:        p.Code,
		Description: p.Description,
		Unit:        p.Unit,
		Category:    p.Category,
		Stock:       p.Stock,
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.cache.Set(ctx, key, raw, lookupTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("lookup cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *productService) invalidateLookup(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, lookupKey(code)).Err(); err != nil {
		log.Warn().Err(err).Str("code", code).Msg("lookup cache invalidation failed")
	}
}

func lookupKey(code string) string { return "lookup:" + code }

func productResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Code:        p.Code,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		Unit:        p.Unit,
		Stock:       p.Stock,
	}
}
