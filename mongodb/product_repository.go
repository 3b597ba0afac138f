package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// ProductRepository implements domain.ProductRepository.
type ProductRepository struct {
	products *mongo.Collection
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(ctx context.Context, db *mongo.Database) (*ProductRepository, error) {
	repo := &ProductRepository{
		products: db.Collection(ProductsCollection),
	}
	if err := repo.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create product indexes")
	}
	return repo, nil
}

func (r *ProductRepository) createIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
	}

	_, err := r.products.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes for products collection: %w", err)
	}
	return nil
}

// CreateProduct inserts a new product.
func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.products.InsertOne(ctx, product); err != nil {
		log.Error().Err(err).Str("name", product.Name).Msg("Error creating product in MongoDB")
		return err
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error getting product by ID from MongoDB")
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every product.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{})
}

// ListProductsByCategory returns the products of one category.
func (r *ProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"category": category})
}

// ListProductsByIDs returns the products whose IDs are in ids.
func (r *ProductRepository) ListProductsByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ListFeaturedProducts returns the products flagged as featured.
func (r *ProductRepository) ListFeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"is_featured": true})
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		log.Error().Err(err).Interface("filter", filter).Msg("Error listing products from MongoDB")
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []*domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// SampleProducts returns up to n random products via $sample.
func (r *ProductRepository) SampleProducts(ctx context.Context, n int) ([]*domain.Product, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error().Err(err).Msg("Error sampling products from MongoDB")
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []*domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode sampled products: %w", err)
	}
	return products, nil
}

// SetFeatured updates the featured flag and returns the updated product.
func (r *ProductRepository) SetFeatured(ctx context.Context, id string, featured bool) (*domain.Product, error) {
	update := bson.M{"$set": bson.M{
		"is_featured": featured,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := r.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error updating featured flag in MongoDB")
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error deleting product from MongoDB")
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
