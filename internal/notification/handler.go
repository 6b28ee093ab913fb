package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/glutt28/ecommerce-prototype/internal/email"
	"github.com/glutt28/ecommerce-prototype/internal/kafka"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
	"github.com/glutt28/ecommerce-prototype/internal/service"
)

// EmailSender sends order notifications. Satisfied by email.Service.
type EmailSender interface {
	SendOrderConfirmation(to, orderID string, total float64, items []email.OrderItem) error
}

// Handler processes events for sending notifications
type Handler struct {
	emailService EmailSender
	users        repository.UserRepository
}

// NewHandler creates a new notification handler
func NewHandler(emailSvc EmailSender, users repository.UserRepository) *Handler {
	return &Handler{
		emailService: emailSvc,
		users:        users,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope kafka.Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] Failed to unmarshal envelope: %v", err)
		return err
	}

	// Only process OrderCreated events
	if envelope.EventType == service.EventOrderCreated {
		return h.handleOrderCreated(ctx, envelope)
	}

	return nil
}

func (h *Handler) handleOrderCreated(ctx context.Context, envelope kafka.Envelope) error {
	var e service.OrderCreated
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderCreated event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderCreated event for order %s, user %s", e.OrderID, e.UserID)

	user, err := h.users.Get(ctx, e.UserID)
	if err != nil {
		// An order for an unknown user is not retryable; log and move on.
		log.Printf("[Notifier] User %s not found for order %s: %v", e.UserID, e.OrderID, err)
		return nil
	}

	emailItems := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		emailItems[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := h.emailService.SendOrderConfirmation(user.Email, e.OrderID, e.Total, emailItems); err != nil {
		log.Printf("[Notifier] Failed to send confirmation for order %s: %v", e.OrderID, err)
		return nil
	}

	log.Printf("[Notifier] Sent order confirmation for %s to %s", e.OrderID, user.Email)
	return nil
}
