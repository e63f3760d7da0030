package domain

import (
	"context"
	"math"

	"github.com/bwmarrin/snowflake"
)

// TotalPayable sums every component of a structure and rounds to the nearest
// whole currency unit. A structure without components is payable at 0.
//
// The platform this engine replaced also accepted a fee-group argument here
// and ignored it; the parameter is dropped rather than carried dead.
func TotalPayable(ctx context.Context, repo Repository, feeStructureID snowflake.ID) (int64, error) {
	sum, err := repo.SumComponents(ctx, feeStructureID)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(sum)), nil
}

// ApplyWaiver reduces a total by the waived amount when the waiver flag is
// set, clamping at zero.
func ApplyWaiver(total int64, isWaivedOff bool, waivedOffAmount int64) int64 {
	if isWaivedOff {
		total -= waivedOffAmount
	}
	if total < 0 {
		return 0
	}
	return total
}
