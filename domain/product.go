package domain

import "time"

// Product is a catalog entry. Image holds the public URL served by the
// external image host.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image" json:"image"`
	Category    string    `bson:"category" json:"category"`
	IsFeatured  bool      `bson:"is_featured" json:"isFeatured"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}
