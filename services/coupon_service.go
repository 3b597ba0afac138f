package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// CouponService resolves and validates per-user discount codes.
type CouponService struct {
	coupons domain.CouponRepository
	now     func() time.Time
}

// NewCouponService creates a new CouponService.
func NewCouponService(coupons domain.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// ActiveCoupon returns the user's active coupon, or nil when they have
// none.
func (s *CouponService) ActiveCoupon(ctx context.Context, userID string) (*domain.Coupon, error) {
	coupon, err := s.coupons.GetActiveCouponForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCouponNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return coupon, nil
}

// Validate checks a code against the user's coupons. An expired coupon
// is deactivated on sight and reported as domain.ErrCouponExpired.
func (s *CouponService) Validate(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	coupon, err := s.coupons.GetCouponByCode(ctx, code, userID)
	if err != nil {
		return nil, err
	}

	if coupon.Expired(s.now()) {
		if err := s.coupons.DeactivateCoupon(ctx, coupon.ID); err != nil {
			log.Warn().Err(err).Str("coupon_id", coupon.ID).Msg("failed to deactivate expired coupon")
		}
		return nil, domain.ErrCouponExpired
	}

	return coupon, nil
}
