package services

import (
	"context"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// PasswordHasher defines an interface for hashing and verifying passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

// ProductCache caches the featured-products listing.
type ProductCache interface {
	Get(ctx context.Context) ([]*domain.Product, bool)
	Set(ctx context.Context, products []*domain.Product) error
}
