package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glutt28/ecommerce-prototype/internal/models"
)

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (m *mongoProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := m.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (m *mongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a product keyed by name. Used by the seeder
// so reseeding never duplicates the catalog.
func (m *mongoProductRepository) Upsert(ctx context.Context, p *models.Product) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	filter := bson.M{"name": p.Name}
	update := bson.M{"$set": bson.M{
		"description": p.Description,
		"price":       p.Price,
		"image":       p.Image,
		"category":    p.Category,
		"stock":       p.Stock,
		"rating":      p.Rating,
		"num_reviews": p.NumReviews,
		"updated_at":  p.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"_id":        p.ID,
		"created_at": p.CreatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}
