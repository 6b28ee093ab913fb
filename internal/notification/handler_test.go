package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glutt28/ecommerce-prototype/internal/email"
	"github.com/glutt28/ecommerce-prototype/internal/kafka"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
	"github.com/glutt28/ecommerce-prototype/internal/service"
)

type fakeSender struct {
	err   error
	sends []struct {
		To      string
		OrderID string
		Total   float64
		Items   []email.OrderItem
	}
}

func (f *fakeSender) SendOrderConfirmation(to, orderID string, total float64, items []email.OrderItem) error {
	f.sends = append(f.sends, struct {
		To      string
		OrderID string
		Total   float64
		Items   []email.OrderItem
	}{to, orderID, total, items})
	return f.err
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error { return nil }

func (f *fakeUsers) Get(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func orderCreatedEnvelope(t *testing.T, event service.OrderCreated) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	envelope, err := json.Marshal(kafka.Envelope{
		EventType: service.EventOrderCreated,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)
	return envelope
}

// ============================================
// HandleEvent Tests
// ============================================

func TestHandler_HandleEvent_SendsConfirmation(t *testing.T) {
	sender := &fakeSender{}
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "buyer@example.com"},
	}}
	handler := NewHandler(sender, users)

	value := orderCreatedEnvelope(t, service.OrderCreated{
		OrderID: "order-1",
		UserID:  "user-1",
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Laptop", Price: 1500, Quantity: 1}},
		Total:   1500,
	})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	require.Len(t, sender.sends, 1)
	assert.Equal(t, "buyer@example.com", sender.sends[0].To)
	assert.Equal(t, "order-1", sender.sends[0].OrderID)
	assert.Equal(t, 1500.0, sender.sends[0].Total)
	require.Len(t, sender.sends[0].Items, 1)
	assert.Equal(t, "Laptop", sender.sends[0].Items[0].Name)
}

func TestHandler_HandleEvent_IgnoresOtherEventTypes(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, &fakeUsers{})

	envelope, err := json.Marshal(kafka.Envelope{EventType: "SomethingElse", Data: []byte(`{}`)})
	require.NoError(t, err)

	err = handler.HandleEvent(context.Background(), nil, envelope)

	require.NoError(t, err)
	assert.Empty(t, sender.sends)
}

func TestHandler_HandleEvent_MalformedEnvelope(t *testing.T) {
	handler := NewHandler(&fakeSender{}, &fakeUsers{})

	err := handler.HandleEvent(context.Background(), nil, []byte("{not json"))

	assert.Error(t, err)
}

func TestHandler_HandleEvent_UnknownUserIsNotRetried(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, &fakeUsers{})

	value := orderCreatedEnvelope(t, service.OrderCreated{OrderID: "order-1", UserID: "ghost"})

	err := handler.HandleEvent(context.Background(), nil, value)

	assert.NoError(t, err)
	assert.Empty(t, sender.sends)
}

func TestHandler_HandleEvent_SendFailureIsNotRetried(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "buyer@example.com"},
	}}
	handler := NewHandler(sender, users)

	value := orderCreatedEnvelope(t, service.OrderCreated{OrderID: "order-1", UserID: "user-1"})

	err := handler.HandleEvent(context.Background(), nil, value)

	assert.NoError(t, err)
}
