package domain

import "time"

// Role defines the authorization role of a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a storefront account. PasswordHash never leaves the
// server; JSON tags shape the public view returned by the auth endpoints.
type User struct {
	ID           string     `bson:"_id,omitempty" json:"_id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         Role       `bson:"role" json:"role"`
	CartItems    []CartItem `bson:"cart_items,omitempty" json:"cartItems,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"-"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"-"`
}

// IsAdmin reports whether the user may access admin-only routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
