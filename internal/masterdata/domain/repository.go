package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrInvalidSelectionPolicy = errors.New("invalid_selection_policy")
	ErrAmbiguousFeeGroup      = errors.New("ambiguous_fee_group")
)

// SelectionPolicy decides what to do when a lookup that is expected to yield
// one row yields several. The data model carries no priority column, so the
// choice is left to the integrator.
type SelectionPolicy int

const (
	// SelectFirstByCreationOrder picks the oldest row. Matches the
	// historical behavior of the platform this engine replaced.
	SelectFirstByCreationOrder SelectionPolicy = iota

	// SelectErrorIfAmbiguous refuses to guess when more than one row
	// qualifies.
	SelectErrorIfAmbiguous
)

func ParseSelectionPolicy(value string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "first":
		return SelectFirstByCreationOrder, nil
	case "strict":
		return SelectErrorIfAmbiguous, nil
	default:
		return SelectFirstByCreationOrder, ErrInvalidSelectionPolicy
	}
}

// CategoryTable is the per-batch fee-category name index, loaded once so row
// processing does not issue one lookup query per row. Keys are normalized
// names; the table is read-only after construction.
type CategoryTable map[string]snowflake.ID

func (t CategoryTable) Lookup(name string) (snowflake.ID, bool) {
	id, ok := t[NormalizeCategoryName(name)]
	return id, ok
}

// NormalizeCategoryName trims and lowercases so "  Tuition " matches
// "TUITION".
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolver is the read side of the engine. Every Find method returns
// (nil, nil) when no row matches; errors are reserved for store failures.
type Resolver interface {
	LoadCategoryTable(ctx context.Context) (CategoryTable, error)
	ListCategories(ctx context.Context) ([]FeeCategory, error)
	FindFirstGroupByCategory(ctx context.Context, categoryID snowflake.ID, policy SelectionPolicy) (*FeeGroup, error)
	FindStudentByUID(ctx context.Context, uid string) (*Student, error)
	FindClassByName(ctx context.Context, name, classType string) (*Class, error)
	FindLatestPromotion(ctx context.Context, studentID, classID snowflake.ID) (*Promotion, error)
	FindPromotion(ctx context.Context, id snowflake.ID) (*Promotion, error)
	FindSession(ctx context.Context, id snowflake.ID) (*Session, error)

	// WithDB rebinds the resolver to another connection, typically a
	// transaction.
	WithDB(db *gorm.DB) Resolver
}
