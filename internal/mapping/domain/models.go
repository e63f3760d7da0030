// Package domain contains the fee-group/promotion link record the
// reconciliation engine owns.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FeeGroupPromotionMapping links one fee group to one promotion. At most one
// row may exist per (fee_group_id, promotion_id); the store enforces this
// with a unique index so concurrent batches converge on a single row.
type FeeGroupPromotionMapping struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	FeeGroupID      snowflake.ID `gorm:"not null;index:ux_fee_group_promotion,unique" json:"fee_group_id"`
	PromotionID     snowflake.ID `gorm:"not null;index:ux_fee_group_promotion,unique" json:"promotion_id"`
	CreatedByUserID snowflake.ID `gorm:"not null" json:"created_by_user_id"`
	UpdatedByUserID snowflake.ID `gorm:"not null" json:"updated_by_user_id"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

func (FeeGroupPromotionMapping) TableName() string { return "fee_group_promotion_mappings" }
