// Package domain defines the cascade recalculation contract: whenever the
// mapping a promotion depends on changes, every derived payable row must be
// brought back in line with it.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrPromotionNotFound = errors.New("promotion_not_found")
	ErrSessionNotFound   = errors.New("session_not_found")
	ErrAmbiguousMapping  = errors.New("ambiguous_fee_group_mapping")
)

type Service interface {
	// RecalculatePromotion selects the authoritative mapping for the
	// promotion (no-op when none exists), finds every fee structure
	// matching the promotion's academic context, and upserts one payable
	// row per structure. It only ever writes fee_student_mappings and
	// never deletes. tx may be the base connection or an open
	// transaction.
	RecalculatePromotion(ctx context.Context, tx *gorm.DB, promotionID snowflake.ID) error
}
