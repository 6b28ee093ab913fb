package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

const EventOrderCreated = "OrderCreated"

// OrderCreated is published after an order is persisted.
type OrderCreated struct {
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Items     []models.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, event any) error
}

// OrderService persists orders and announces them. Publishing is
// best-effort: the order is already durable when the event goes out, and
// a publish failure is logged, not returned.
type OrderService struct {
	repo      repository.OrderRepository
	publisher Publisher

	// dispatch runs the event publish off the request path.
	dispatch func(func())
}

func NewOrderService(repo repository.OrderRepository, publisher Publisher) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		dispatch:  func(fn func()) { go fn() },
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	order := &models.Order{
		UserID: userID,
		Items:  items,
		Total:  total,
		Status: models.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishCreated(order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := OrderCreated{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Items:     order.Items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, order.ID, EventOrderCreated, event); err != nil {
			log.Printf("[Order] Failed to publish OrderCreated for %s: %v", order.ID, err)
		}
	})
}
