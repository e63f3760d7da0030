package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	cascadeservice "github.com/campuslabs/feeflow/internal/cascade/service"
	"github.com/campuslabs/feeflow/internal/clock"
	"github.com/campuslabs/feeflow/internal/config"
	feedomain "github.com/campuslabs/feeflow/internal/feestructure/domain"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node

	student   masterdomain.Student
	promotion masterdomain.Promotion
	structure feedomain.FeeStructure
	groupA    masterdomain.FeeGroup
	groupB    masterdomain.FeeGroup
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&masterdomain.FeeCategory{},
		&masterdomain.FeeSlab{},
		&masterdomain.FeeGroup{},
		&masterdomain.Student{},
		&masterdomain.Class{},
		&masterdomain.AcademicYear{},
		&masterdomain.Session{},
		&masterdomain.Shift{},
		&masterdomain.ProgramCourse{},
		&masterdomain.Promotion{},
		&mappingdomain.FeeGroupPromotionMapping{},
		&feedomain.FeeStructure{},
		&feedomain.FeeStructureComponent{},
		&feedomain.FeeStudentMapping{},
	))

	node, _ := snowflake.NewNode(1)
	f := &fixture{db: db, node: node}

	year := masterdomain.AcademicYear{ID: node.Generate(), Name: "2026-27"}
	session := masterdomain.Session{ID: node.Generate(), AcademicYearID: year.ID}
	shift := masterdomain.Shift{ID: node.Generate(), Name: "Morning"}
	course := masterdomain.ProgramCourse{ID: node.Generate(), Name: "B.A. Economics"}
	class := masterdomain.Class{ID: node.Generate(), Name: "SEMESTER III", Type: masterdomain.ClassTypeSemester}
	category := masterdomain.FeeCategory{ID: node.Generate(), Name: "Tuition"}
	slab := masterdomain.FeeSlab{ID: node.Generate(), Name: "General"}
	f.student = masterdomain.Student{ID: node.Generate(), UID: "E3-101"}
	f.promotion = masterdomain.Promotion{
		ID:              node.Generate(),
		StudentID:       f.student.ID,
		ClassID:         class.ID,
		SessionID:       session.ID,
		ShiftID:         shift.ID,
		ProgramCourseID: course.ID,
		CreatedAt:       time.Now().UTC(),
	}
	f.groupA = masterdomain.FeeGroup{ID: node.Generate(), FeeCategoryID: category.ID, FeeSlabID: slab.ID, CreatedAt: time.Now().UTC()}
	f.groupB = masterdomain.FeeGroup{ID: node.Generate(), FeeCategoryID: category.ID, FeeSlabID: slab.ID, CreatedAt: time.Now().UTC()}
	f.structure = feedomain.FeeStructure{
		ID:              node.Generate(),
		AcademicYearID:  year.ID,
		ClassID:         class.ID,
		ProgramCourseID: course.ID,
		ShiftID:         shift.ID,
	}

	for _, row := range []any{&year, &session, &shift, &course, &class, &category, &slab, &f.student, &f.promotion, &f.groupA, &f.groupB, &f.structure} {
		require.NoError(t, db.Create(row).Error)
	}
	require.NoError(t, db.Create(&feedomain.FeeStructureComponent{
		ID:             node.Generate(),
		FeeStructureID: f.structure.ID,
		Amount:         5000,
	}).Error)
	return f
}

// fixedClock pins Now so timestamp assertions are exact.
type fixedClock struct{ at time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.at }

func newMappingService(t *testing.T, f *fixture, clk clock.Clock) mappingdomain.Service {
	t.Helper()
	cascade, err := cascadeservice.NewService(cascadeservice.Params{
		DB:    f.db,
		Log:   zap.NewNop(),
		GenID: f.node,
		Clock: clk,
		Cfg: config.Config{
			Reconcile: config.ReconcileConfig{GroupSelection: "first"},
		},
	})
	require.NoError(t, err)

	return NewService(Params{
		DB:      f.db,
		Log:     zap.NewNop(),
		Clock:   clk,
		Cascade: cascade,
	})
}

func (f *fixture) createMapping(t *testing.T, feeGroupID snowflake.ID) mappingdomain.FeeGroupPromotionMapping {
	t.Helper()
	now := time.Now().UTC()
	m := mappingdomain.FeeGroupPromotionMapping{
		ID:              f.node.Generate(),
		FeeGroupID:      feeGroupID,
		PromotionID:     f.promotion.ID,
		CreatedByUserID: f.node.Generate(),
		UpdatedByUserID: f.node.Generate(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func TestUpdateFeeGroup_MissingMapping(t *testing.T) {
	f := newFixture(t)
	svc := newMappingService(t, f, clock.SystemClock{})

	updated, err := svc.UpdateFeeGroup(context.Background(), f.node.Generate(), f.groupB.ID, f.node.Generate())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateFeeGroup_InvalidGroup(t *testing.T) {
	f := newFixture(t)
	svc := newMappingService(t, f, clock.SystemClock{})

	_, err := svc.UpdateFeeGroup(context.Background(), f.node.Generate(), 0, f.node.Generate())
	assert.ErrorIs(t, err, mappingdomain.ErrInvalidFeeGroup)
}

func TestUpdateFeeGroup_RecalculatesDependents(t *testing.T) {
	f := newFixture(t)
	stamp := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	svc := newMappingService(t, f, fixedClock{at: stamp})
	m := f.createMapping(t, f.groupA.ID)

	// Stale dependent row produced against group A's context.
	stale := feedomain.FeeStudentMapping{
		ID:                         f.node.Generate(),
		StudentID:                  f.student.ID,
		FeeStructureID:             f.structure.ID,
		FeeGroupPromotionMappingID: f.node.Generate(),
		TotalPayable:               123,
	}
	require.NoError(t, f.db.Create(&stale).Error)

	actor := f.node.Generate()
	updated, err := svc.UpdateFeeGroup(context.Background(), m.ID, f.groupB.ID, actor)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, f.groupB.ID, updated.FeeGroupID)
	assert.Equal(t, actor, updated.UpdatedByUserID)
	assert.True(t, updated.UpdatedAt.Equal(stamp), "updated_at must be stamped through the service clock")

	var rows []feedomain.FeeStudentMapping
	require.NoError(t, f.db.Where("student_id = ?", f.student.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, m.ID, rows[0].FeeGroupPromotionMappingID, "stale mapping pointer must be replaced")
	assert.Equal(t, int64(5000), rows[0].TotalPayable, "stale total must be recomputed")
}

func TestUpdateFeeGroup_SameGroupSkipsCascade(t *testing.T) {
	f := newFixture(t)
	svc := newMappingService(t, f, clock.SystemClock{})
	m := f.createMapping(t, f.groupA.ID)

	stale := feedomain.FeeStudentMapping{
		ID:                         f.node.Generate(),
		StudentID:                  f.student.ID,
		FeeStructureID:             f.structure.ID,
		FeeGroupPromotionMappingID: f.node.Generate(),
		TotalPayable:               123,
	}
	require.NoError(t, f.db.Create(&stale).Error)

	updated, err := svc.UpdateFeeGroup(context.Background(), m.ID, f.groupA.ID, f.node.Generate())
	require.NoError(t, err)
	require.NotNil(t, updated)

	var row feedomain.FeeStudentMapping
	require.NoError(t, f.db.First(&row, "id = ?", stale.ID).Error)
	assert.Equal(t, int64(123), row.TotalPayable, "unchanged group must not trigger the cascade")
}
