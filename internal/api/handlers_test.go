package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glutt28/ecommerce-prototype/internal/cache"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
	"github.com/glutt28/ecommerce-prototype/internal/service"
)

type fakeProductRepo struct {
	products []models.Product
}

func (f *fakeProductRepo) List(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	p.ID = "p-new"
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	return f.Create(ctx, p)
}

// missCache always misses and drops writes.
type missCache struct{}

func (missCache) GetList(ctx context.Context) ([]models.Product, error) {
	return nil, cache.ErrCacheMiss
}
func (missCache) SetList(ctx context.Context, products []models.Product) error { return nil }
func (missCache) Get(ctx context.Context, id string) (*models.Product, error) {
	return nil, cache.ErrCacheMiss
}
func (missCache) Set(ctx context.Context, p *models.Product) error { return nil }
func (missCache) Invalidate(ctx context.Context) error             { return nil }

type fakeOrderRepo struct {
	orders []models.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *models.Order) error {
	o.ID = "order-1"
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func newTestHandlers(productRepo *fakeProductRepo, orderRepo *fakeOrderRepo) *Handlers {
	catalog := service.NewCatalogService(productRepo, missCache{})
	orders := service.NewOrderService(orderRepo, nil)
	return NewHandlers(catalog, orders)
}

// ============================================
// Product Handler Tests
// ============================================

func TestHandlers_GetProducts(t *testing.T) {
	handlers := newTestHandlers(&fakeProductRepo{products: []models.Product{
		{ID: "p1", Name: "Laptop", Price: 1500},
		{ID: "p2", Name: "Mouse", Price: 25},
	}}, &fakeOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	handlers.GetProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestHandlers_GetProduct(t *testing.T) {
	handlers := newTestHandlers(&fakeProductRepo{products: []models.Product{
		{ID: "p1", Name: "Laptop"},
	}}, &fakeOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
	rec := httptest.NewRecorder()

	handlers.GetProduct(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "Laptop", product.Name)
}

func TestHandlers_GetProduct_NotFound(t *testing.T) {
	handlers := newTestHandlers(&fakeProductRepo{}, &fakeOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec := httptest.NewRecorder()

	handlers.GetProduct(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestHandlers_CreateProduct(t *testing.T) {
	repo := &fakeProductRepo{}
	handlers := newTestHandlers(repo, &fakeOrderRepo{})

	body := `{"name":"Keyboard","price":75,"category":"electronics"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.CreateProduct(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.products, 1)
}

func TestHandlers_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"price":75}`},
		{"negative price", `{"name":"Keyboard","price":-1}`},
		{"malformed body", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := newTestHandlers(&fakeProductRepo{}, &fakeOrderRepo{})

			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handlers.CreateProduct(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// ============================================
// Order Handler Tests
// ============================================

func TestHandlers_CreateOrder(t *testing.T) {
	orderRepo := &fakeOrderRepo{}
	handlers := newTestHandlers(&fakeProductRepo{}, orderRepo)

	body := `{"orderItems":[{"productId":"p1","name":"Laptop","price":1500,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.CreateOrder(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 3000.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestHandlers_CreateOrder_Empty(t *testing.T) {
	handlers := newTestHandlers(&fakeProductRepo{}, &fakeOrderRepo{})

	body := `{"orderItems":[]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_GetOrders_EmptyIsJSONArray(t *testing.T) {
	handlers := newTestHandlers(&fakeProductRepo{}, &fakeOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()

	handlers.GetOrders(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
