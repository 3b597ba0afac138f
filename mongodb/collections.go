package mongodb

const (
	UsersCollection    = "users"    // For storefront accounts
	ProductsCollection = "products" // For the catalog
	CouponsCollection  = "coupons"  // For per-user discount codes
)
