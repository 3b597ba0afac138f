package services

import (
	"context"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// CartLine is a cart entry joined with its product data.
type CartLine struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// CartService persists cart changes on the user document. All mutations
// go through the pure functions in the domain package and replace the
// stored collection wholesale.
type CartService struct {
	users    domain.UserRepository
	products domain.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(users domain.UserRepository, products domain.ProductRepository) *CartService {
	return &CartService{users: users, products: products}
}

// GetCart joins the user's line items with their product records. Lines
// whose product has since been deleted are skipped.
func (s *CartService) GetCart(ctx context.Context, user *domain.User) ([]CartLine, error) {
	if len(user.CartItems) == 0 {
		return []CartLine{}, nil
	}

	ids := make([]string, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.ListProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]CartLine, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{Product: *product, Quantity: item.Quantity})
	}
	return lines, nil
}

// AddToCart adds one unit of the product and persists the new collection.
func (s *CartService) AddToCart(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error) {
	items := domain.AddItem(user.CartItems, productID)
	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveFromCart removes the product's line; an empty productID clears
// the whole cart.
func (s *CartService) RemoveFromCart(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error) {
	items := domain.RemoveItem(user.CartItems, productID)
	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the quantity of an existing line, removing it at
// zero. Returns domain.ErrProductNotFound when the cart holds no line
// for the product.
func (s *CartService) UpdateQuantity(ctx context.Context, user *domain.User, productID string, quantity int) ([]domain.CartItem, error) {
	items, found := domain.SetQuantity(user.CartItems, productID, quantity)
	if !found {
		return nil, domain.ErrProductNotFound
	}
	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	return items, nil
}
