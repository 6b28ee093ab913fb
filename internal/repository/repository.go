package repository

import (
	"context"
	"errors"

	"github.com/glutt28/ecommerce-prototype/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ProductRepository persists the catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Upsert(ctx context.Context, p *models.Product) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
