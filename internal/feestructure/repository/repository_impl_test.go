package repository

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	feedomain "github.com/campuslabs/feeflow/internal/feestructure/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&feedomain.FeeStructure{},
		&feedomain.FeeStructureComponent{},
		&feedomain.FeeStudentMapping{},
	))
	return db
}

func TestSumComponentsAndTotalPayable(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := NewRepository(db)
	ctx := context.Background()

	structure := feedomain.FeeStructure{
		ID:              node.Generate(),
		AcademicYearID:  node.Generate(),
		ClassID:         node.Generate(),
		ProgramCourseID: node.Generate(),
		ShiftID:         node.Generate(),
	}
	require.NoError(t, db.Create(&structure).Error)

	t.Run("no components sums to zero", func(t *testing.T) {
		total, err := feedomain.TotalPayable(ctx, repo, structure.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	components := []feedomain.FeeStructureComponent{
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Tuition", Amount: 4200.25},
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Library", Amount: 500.50},
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Lab", Amount: 299.0},
	}
	require.NoError(t, db.Create(&components).Error)

	t.Run("fractional components round to whole unit", func(t *testing.T) {
		total, err := feedomain.TotalPayable(ctx, repo, structure.ID)
		require.NoError(t, err)
		// 4200.25 + 500.50 + 299.0 = 4999.75 -> 5000
		assert.Equal(t, int64(5000), total)
	})

	t.Run("other structures are not included", func(t *testing.T) {
		other := feedomain.FeeStructure{
			ID:              node.Generate(),
			AcademicYearID:  structure.AcademicYearID,
			ClassID:         structure.ClassID,
			ProgramCourseID: structure.ProgramCourseID,
			ShiftID:         structure.ShiftID,
		}
		require.NoError(t, db.Create(&other).Error)

		total, err := feedomain.TotalPayable(ctx, repo, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestStudentMappingRoundTrip(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := NewRepository(db)
	ctx := context.Background()

	studentID := node.Generate()
	structureID := node.Generate()

	missing, err := repo.FindStudentMapping(ctx, studentID, structureID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	row := &feedomain.FeeStudentMapping{
		ID:                         node.Generate(),
		StudentID:                  studentID,
		FeeStructureID:             structureID,
		FeeGroupPromotionMappingID: node.Generate(),
		TotalPayable:               5000,
	}
	require.NoError(t, repo.InsertStudentMapping(ctx, row))

	found, err := repo.FindStudentMapping(ctx, studentID, structureID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, row.ID, found.ID)
	assert.Equal(t, int64(5000), found.TotalPayable)

	found.TotalPayable = 4000
	found.FeeGroupPromotionMappingID = node.Generate()
	require.NoError(t, repo.UpdateStudentMapping(ctx, found))

	updated, err := repo.FindStudentMapping(ctx, studentID, structureID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), updated.TotalPayable)
	assert.Equal(t, found.FeeGroupPromotionMappingID, updated.FeeGroupPromotionMappingID)
}
