package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidFeeGroup = errors.New("invalid_fee_group")

type Service interface {
	// UpdateFeeGroup repoints a mapping at another fee group and, when the
	// group actually changed, recalculates every dependent payable row.
	// Returns (nil, nil) when the mapping does not exist.
	UpdateFeeGroup(ctx context.Context, mappingID, newFeeGroupID, actorID snowflake.ID) (*FeeGroupPromotionMapping, error)
}
