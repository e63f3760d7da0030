package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&mappingdomain.FeeGroupPromotionMapping{}))
	return db
}

func newRow(node *snowflake.Node, feeGroupID, promotionID, actorID snowflake.ID) *mappingdomain.FeeGroupPromotionMapping {
	now := time.Now().UTC()
	return &mappingdomain.FeeGroupPromotionMapping{
		ID:              node.Generate(),
		FeeGroupID:      feeGroupID,
		PromotionID:     promotionID,
		CreatedByUserID: actorID,
		UpdatedByUserID: actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestFindOrCreate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := NewRepository(db)
	ctx := context.Background()

	feeGroupID := node.Generate()
	promotionID := node.Generate()
	actorID := node.Generate()

	first, created, err := repo.FindOrCreate(ctx, newRow(node, feeGroupID, promotionID, actorID))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.FindOrCreate(ctx, newRow(node, feeGroupID, promotionID, actorID))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "same pair must resolve to the same mapping")

	var count int64
	require.NoError(t, db.Model(&mappingdomain.FeeGroupPromotionMapping{}).
		Where("fee_group_id = ? AND promotion_id = ?", feeGroupID, promotionID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreate_DistinctPairs(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := NewRepository(db)
	ctx := context.Background()

	promotionID := node.Generate()
	actorID := node.Generate()

	a, created, err := repo.FindOrCreate(ctx, newRow(node, node.Generate(), promotionID, actorID))
	require.NoError(t, err)
	assert.True(t, created)

	b, created, err := repo.FindOrCreate(ctx, newRow(node, node.Generate(), promotionID, actorID))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)

	rows, err := repo.ListByPromotion(ctx, promotionID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("missing id returns nil", func(t *testing.T) {
		updated, err := repo.Update(ctx, node.Generate(), mappingdomain.UpdatePatch{}, node.Generate(), time.Now().UTC())
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("patches fee group and actor", func(t *testing.T) {
		row, _, err := repo.FindOrCreate(ctx, newRow(node, node.Generate(), node.Generate(), node.Generate()))
		require.NoError(t, err)

		newGroup := node.Generate()
		editor := node.Generate()
		stamp := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
		updated, err := repo.Update(ctx, row.ID, mappingdomain.UpdatePatch{FeeGroupID: &newGroup}, editor, stamp)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, newGroup, updated.FeeGroupID)
		assert.Equal(t, editor, updated.UpdatedByUserID)
		assert.Equal(t, row.CreatedByUserID, updated.CreatedByUserID)
		assert.True(t, updated.UpdatedAt.Equal(stamp), "updated_at must come from the caller's clock")
	})
}
