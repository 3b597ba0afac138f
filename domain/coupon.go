package domain

import "time"

// Coupon is a per-user discount code. A user has at most one active
// coupon at a time.
type Coupon struct {
	ID                 string    `bson:"_id,omitempty" json:"_id"`
	Code               string    `bson:"code" json:"code"`
	DiscountPercentage int       `bson:"discount_percentage" json:"discountPercentage"`
	ExpirationDate     time.Time `bson:"expiration_date" json:"expirationDate"`
	IsActive           bool      `bson:"is_active" json:"isActive"`
	UserID             string    `bson:"user_id" json:"userId"`
}

// Expired reports whether the coupon's expiration date has passed.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpirationDate.Before(now)
}
