package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

const featuredProductsKey = "featured_products"

// FeaturedCache caches the featured-products listing in Redis so the
// storefront home page does not hit MongoDB on every load.
type FeaturedCache struct {
	client *redis.Client
}

// NewFeaturedCache creates a new [FeaturedCache] instance.
func NewFeaturedCache(client *redis.Client) *FeaturedCache {
	return &FeaturedCache{client: client}
}

// Get returns the cached listing and whether the cache held one.
func (c *FeaturedCache) Get(ctx context.Context) ([]*domain.Product, bool) {
	res, err := c.client.Get(ctx, featuredProductsKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("failed to read featured products cache")
		}
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal([]byte(res), &products); err != nil {
		log.Warn().Err(err).Msg("failed to unmarshal featured products cache")
		return nil, false
	}
	return products, true
}

// Set replaces the cached listing.
func (c *FeaturedCache) Set(ctx context.Context, products []*domain.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal featured products: %w", err)
	}
	if err := c.client.Set(ctx, featuredProductsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache featured products: %w", err)
	}
	return nil
}
