package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

const recommendedSampleSize = 4

// CreateProductInput carries the fields accepted when creating a
// product. Image is the raw payload handed to the image host; the
// stored product keeps only the resulting URL.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// ProductService implements the catalog operations: listing, featured
// caching, creation with image upload, and deletion.
type ProductService struct {
	products domain.ProductRepository
	images   domain.ImageStore
	cache    ProductCache
}

// NewProductService creates a new ProductService.
func NewProductService(products domain.ProductRepository, images domain.ImageStore, cache ProductCache) *ProductService {
	return &ProductService{products: products, images: images, cache: cache}
}

// ListAll returns every product. Admin-only at the HTTP layer.
func (s *ProductService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListProducts(ctx)
}

// ListByCategory returns the products of one category.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.ListProductsByCategory(ctx, category)
}

// Recommended returns a random product sample for the cart page.
func (s *ProductService) Recommended(ctx context.Context) ([]*domain.Product, error) {
	return s.products.SampleProducts(ctx, recommendedSampleSize)
}

// Featured returns the featured products, serving from the cache when
// warm and repopulating it on a miss.
func (s *ProductService) Featured(ctx context.Context) ([]*domain.Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}

	products, err := s.products.ListFeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, products); err != nil {
		log.Warn().Err(err).Msg("failed to refresh featured products cache")
	}
	return products, nil
}

// Create uploads the image (when one was submitted) and persists the
// product.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	var imageURL string
	if input.Image != "" {
		url, err := s.images.Upload(ctx, input.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		imageURL = url
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       imageURL,
		Category:    input.Category,
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and, best-effort, its hosted image.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" {
		if err := s.images.Delete(ctx, product.Image); err != nil {
			log.Warn().Err(err).Str("product_id", id).Msg("failed to delete product image")
		}
	}

	return s.products.DeleteProduct(ctx, id)
}

// ToggleFeatured flips the featured flag and refreshes the cache so the
// listing stays consistent with the catalog.
func (s *ProductService) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.SetFeatured(ctx, id, !product.IsFeatured)
	if err != nil {
		return nil, err
	}

	featured, err := s.products.ListFeaturedProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to rebuild featured products cache")
		return updated, nil
	}
	if err := s.cache.Set(ctx, featured); err != nil {
		log.Warn().Err(err).Msg("failed to refresh featured products cache")
	}

	return updated, nil
}
