package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/glutt28/ecommerce-prototype/internal/api/middleware"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
	"github.com/glutt28/ecommerce-prototype/internal/service"
)

type Handlers struct {
	catalog *service.CatalogService
	orders  *service.OrderService
}

func NewHandlers(catalog *service.CatalogService, orders *service.OrderService) *Handlers {
	return &Handlers{
		catalog: catalog,
		orders:  orders,
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		log.Printf("[API] Failed to list products: %v", err)
		respondJSONError(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondJSONError(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("[API] Failed to get product %s: %v", id, err)
		respondJSONError(w, "failed to get product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price < 0 {
		respondJSONError(w, "name is required and price must not be negative", http.StatusBadRequest)
		return
	}

	if err := h.catalog.CreateProduct(r.Context(), &product); err != nil {
		log.Printf("[API] Failed to create product: %v", err)
		respondJSONError(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// Order Handlers

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		OrderItems []models.OrderItem `json:"orderItems"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), userID, req.OrderItems)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			respondJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[API] Failed to create order for user %s: %v", userID, err)
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		log.Printf("[API] Failed to list orders for user %s: %v", userID, err)
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"message": message})
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
