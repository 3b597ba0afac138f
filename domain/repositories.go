package domain

import "context"

// UserRepository is the principal store consumed by the auth surface
// and the cart service.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// UpdateCart replaces the user's cart line items wholesale. The new
	// collection is built by the pure functions in cart.go, never by
	// patching the stored slice in place.
	UpdateCart(ctx context.Context, userID string, items []CartItem) error
}

// ProductRepository provides catalog persistence.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)
	ListProductsByIDs(ctx context.Context, ids []string) ([]*Product, error)
	ListFeaturedProducts(ctx context.Context) ([]*Product, error)
	// SampleProducts returns up to n random products.
	SampleProducts(ctx context.Context, n int) ([]*Product, error)
	// SetFeatured updates the featured flag and returns the updated product.
	SetFeatured(ctx context.Context, id string, featured bool) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CouponRepository provides coupon persistence.
type CouponRepository interface {
	GetActiveCouponForUser(ctx context.Context, userID string) (*Coupon, error)
	GetCouponByCode(ctx context.Context, code, userID string) (*Coupon, error)
	DeactivateCoupon(ctx context.Context, id string) error
}

// ImageStore is the external image host. Upload takes the image payload
// as submitted by the client (a data URL) and returns the public URL to
// persist on the product.
type ImageStore interface {
	Upload(ctx context.Context, image string) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
