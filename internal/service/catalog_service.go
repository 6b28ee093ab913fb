package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/glutt28/ecommerce-prototype/internal/cache"
	"github.com/glutt28/ecommerce-prototype/internal/models"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
)

// CatalogService serves the product catalog, fronting the repository
// with a cache. Cache errors are logged and never surfaced; the
// repository is the source of truth.
type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // prevents cache stampede
}

func NewCatalogService(repo repository.ProductRepository, cache cache.ProductCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.sfg.Do("products:all", func() (any, error) {
		products, err := s.cache.GetList(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("[Catalog] Cache get error: %v", err)
		}

		products, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.SetList(setCtx, products); err != nil {
				log.Printf("[Catalog] Cache set error: %v", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.cache.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[Catalog] Cache get error: %v", err)
	}

	p, err = s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(setCtx, p); err != nil {
			log.Printf("[Catalog] Cache set error: %v", err)
		}
	}()

	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	invCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(invCtx); err != nil {
		log.Printf("[Catalog] Cache invalidate error: %v", err)
	}
	return nil
}
