// Package usecase holds the catalog read use cases. Catalog writes live in
// the ERP that owns the product master; this service only looks parts up.
package usecase

import (
	"context"
	"fmt"

	"github.com/herbie65/Tesland2026-sub004/internal/domain"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/entity"
	"github.com/herbie65/Tesland2026-sub004/internal/domain/repository"
)

// ProductUseCase serves catalog lookups.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// GetBySKU returns the catalog entry for one SKU.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", sku, domain.ErrNotFound)
	}
	return p, nil
}
