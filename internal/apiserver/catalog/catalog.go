// Package catalog 商品目录领域 - 列表与详情
package catalog

import (
	"context"

	"storefront/internal/shared/errs"
	"storefront/internal/shared/model"
	"storefront/internal/shared/storage"
)

// Service 目录服务（只读）
type Service struct {
	store storage.CatalogStore
}

// NewService 创建目录服务
func NewService(store storage.CatalogStore) *Service {
	return &Service{store: store}
}

// ListProducts 上架商品列表（最新在前），每个商品带首个变体的预览图
func (s *Service) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := s.store.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*model.Product{}
	}
	return products, nil
}

// GetProduct 商品详情（含全部变体）
// 不存在返回 errs.ErrProductNotFound，已下架返回 errs.ErrProductUnavailable
func (s *Service) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errs.ErrProductNotFound
	}
	if !product.IsActive {
		return nil, errs.ErrProductUnavailable
	}
	return product, nil
}
