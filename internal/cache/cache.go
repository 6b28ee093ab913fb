package cache

import (
	"context"
	"errors"

	"github.com/glutt28/ecommerce-prototype/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

// ProductCache caches the catalog read side.
type ProductCache interface {
	GetList(ctx context.Context) ([]models.Product, error)
	SetList(ctx context.Context, products []models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	Set(ctx context.Context, p *models.Product) error
	Invalidate(ctx context.Context) error
}
