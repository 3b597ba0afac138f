package domain

// CartItem is a single line of a user's cart, keyed by product ID.
type CartItem struct {
	ProductID string `bson:"product_id" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// The cart functions below are pure: they never mutate their input and
// always return a fresh slice, so request-scoped copies of a user
// document cannot alias each other's line items.

// AddItem increments the quantity of an existing line, or appends a new
// line with quantity 1.
func AddItem(items []CartItem, productID string) []CartItem {
	out := make([]CartItem, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ProductID == productID {
			it.Quantity++
			found = true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, CartItem{ProductID: productID, Quantity: 1})
	}
	return out
}

// RemoveItem drops the line for productID. An empty productID clears
// the whole cart.
func RemoveItem(items []CartItem, productID string) []CartItem {
	if productID == "" {
		return []CartItem{}
	}
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity replaces the quantity of an existing line. Quantity 0
// removes the line. The second return value is false when no line for
// productID exists.
func SetQuantity(items []CartItem, productID string, quantity int) ([]CartItem, bool) {
	found := false
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == productID {
			found = true
			if quantity == 0 {
				continue
			}
			it.Quantity = quantity
		}
		out = append(out, it)
	}
	return out, found
}
