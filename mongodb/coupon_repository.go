package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// CouponRepository implements domain.CouponRepository.
type CouponRepository struct {
	coupons *mongo.Collection
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(ctx context.Context, db *mongo.Database) (*CouponRepository, error) {
	repo := &CouponRepository{
		coupons: db.Collection(CouponsCollection),
	}
	if err := repo.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create coupon indexes")
	}
	return repo, nil
}

func (r *CouponRepository) createIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coupons.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes for coupons collection: %w", err)
	}
	return nil
}

// GetActiveCouponForUser returns the user's active coupon.
func (r *CouponRepository) GetActiveCouponForUser(ctx context.Context, userID string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"user_id": userID, "is_active": true}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Error getting active coupon from MongoDB")
		return nil, err
	}
	return &coupon, nil
}

// GetCouponByCode returns the user's active coupon with the given code.
func (r *CouponRepository) GetCouponByCode(ctx context.Context, code, userID string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code, "user_id": userID, "is_active": true}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		log.Error().Err(err).Str("code", code).Msg("Error getting coupon by code from MongoDB")
		return nil, err
	}
	return &coupon, nil
}

// DeactivateCoupon clears the active flag on a coupon.
func (r *CouponRepository) DeactivateCoupon(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coupons.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error deactivating coupon in MongoDB")
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}

var _ domain.CouponRepository = (*CouponRepository)(nil)
