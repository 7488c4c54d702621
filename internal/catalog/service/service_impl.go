package service

import (
	"context"

	"github.com/smallbiznis/pos/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListStores(ctx context.Context) ([]domain.Store, error) {
	items, err := s.repo.ListStores(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	items, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.ListActiveProducts(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Variants == nil {
			items[i].Variants = []domain.ProductVariant{}
		}
	}
	return nonNil(items), nil
}

func (s *Service) ListCharges(ctx context.Context) ([]domain.Charge, error) {
	items, err := s.repo.ListCharges(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

// nonNil keeps empty tables rendering as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
