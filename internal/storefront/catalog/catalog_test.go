package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	products   []Product
	byCategory map[string][]Product
	err        error
}

func (f *fakeSource) Products(ctx context.Context) ([]Product, error) {
	return f.products, f.err
}

func (f *fakeSource) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return f.byCategory[category], f.err
}

func (f *fakeSource) Categories(ctx context.Context) ([]string, error) {
	return nil, f.err
}

// ============================================
// Load Tests
// ============================================

func TestLoad(t *testing.T) {
	src := &fakeSource{products: []Product{
		{ID: 1, Title: "Mouse", Price: 25},
		{ID: 2, Title: "Hub", Price: 45},
	}}

	cat, err := Load(context.Background(), src)

	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestLoad_SourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("service unavailable")}

	_, err := Load(context.Background(), src)

	assert.Error(t, err)
}

func TestLoadCategory(t *testing.T) {
	src := &fakeSource{byCategory: map[string][]Product{
		"electronics": {{ID: 1, Title: "Mouse", Price: 25}},
	}}

	cat, err := LoadCategory(context.Background(), src, "electronics")

	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "Mouse", cat.Products()[0].Title)
}

// ============================================
// Products Tests
// ============================================

func TestCatalog_Products_ReturnsCopy(t *testing.T) {
	src := &fakeSource{products: []Product{
		{ID: 1, Title: "Mouse"},
		{ID: 2, Title: "Hub"},
	}}
	cat, err := Load(context.Background(), src)
	require.NoError(t, err)

	first := cat.Products()
	first[0], first[1] = first[1], first[0]

	second := cat.Products()
	assert.Equal(t, 1, second[0].ID)
	assert.Equal(t, 2, second[1].ID)
}

// ============================================
// PriceBounds Tests
// ============================================

func TestCatalog_PriceBounds(t *testing.T) {
	src := &fakeSource{products: []Product{
		{ID: 1, Price: 45},
		{ID: 2, Price: 9.99},
		{ID: 3, Price: 200},
	}}
	cat, err := Load(context.Background(), src)
	require.NoError(t, err)

	min, max, ok := cat.PriceBounds()

	require.True(t, ok)
	assert.Equal(t, 9.99, min)
	assert.Equal(t, 200.0, max)
}

func TestCatalog_PriceBounds_SingleProduct(t *testing.T) {
	src := &fakeSource{products: []Product{{ID: 1, Price: 45}}}
	cat, err := Load(context.Background(), src)
	require.NoError(t, err)

	min, max, ok := cat.PriceBounds()

	require.True(t, ok)
	assert.Equal(t, 45.0, min)
	assert.Equal(t, 45.0, max)
}

func TestCatalog_PriceBounds_Empty(t *testing.T) {
	cat, err := Load(context.Background(), &fakeSource{})
	require.NoError(t, err)

	_, _, ok := cat.PriceBounds()

	assert.False(t, ok)
}
