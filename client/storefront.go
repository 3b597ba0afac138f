package client

import (
	"context"
	"net/http"

	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/services"
)

// Typed wrappers over Do for the storefront endpoints. All of them go
// through the refresh coordination in Do.

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and stores the session cookies on the jar.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.Do(ctx, http.MethodPost, "/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the session cookies on the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Profile returns the authenticated principal.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.Do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FeaturedProducts returns the featured listing.
func (c *Client) FeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := c.Do(ctx, http.MethodGet, "/api/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
}

// AddToCart adds one unit of a product to the cart.
func (c *Client) AddToCart(ctx context.Context, productID string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.Do(ctx, http.MethodPost, "/api/cart", addToCartRequest{ProductID: productID}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Cart returns the cart lines joined with product data.
func (c *Client) Cart(ctx context.Context) ([]services.CartLine, error) {
	var lines []services.CartLine
	if err := c.Do(ctx, http.MethodGet, "/api/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
