package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// UpdatePatch carries the updatable mapping fields. Nil means "leave as is".
type UpdatePatch struct {
	FeeGroupID *snowflake.ID
}

// Repository is the mapping store. The store has no side effects beyond its
// own table; callers that change FeeGroupID are responsible for running the
// cascade afterward.
type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*FeeGroupPromotionMapping, error)
	FindByPair(ctx context.Context, feeGroupID, promotionID snowflake.ID) (*FeeGroupPromotionMapping, error)

	// FindOrCreate inserts the prepared row unless the (feeGroupID,
	// promotionID) pair already exists, in which case the stored row is
	// returned. Insertion races resolve through the unique index: the
	// loser reads back the winner's row.
	FindOrCreate(ctx context.Context, row *FeeGroupPromotionMapping) (*FeeGroupPromotionMapping, bool, error)

	// Update patches the row, stamping updated_at with the caller's now, and
	// returns nil when the id does not exist.
	Update(ctx context.Context, id snowflake.ID, patch UpdatePatch, actorID snowflake.ID, now time.Time) (*FeeGroupPromotionMapping, error)

	ListByPromotion(ctx context.Context, promotionID snowflake.ID) ([]FeeGroupPromotionMapping, error)

	WithDB(db *gorm.DB) Repository
}
