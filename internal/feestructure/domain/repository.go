package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// AcademicContext is the tuple a fee structure is keyed on.
type AcademicContext struct {
	AcademicYearID  snowflake.ID
	ClassID         snowflake.ID
	ProgramCourseID snowflake.ID
	ShiftID         snowflake.ID
}

type Repository interface {
	ListByAcademicContext(ctx context.Context, ac AcademicContext) ([]FeeStructure, error)
	SumComponents(ctx context.Context, feeStructureID snowflake.ID) (float64, error)
	FindStudentMapping(ctx context.Context, studentID, feeStructureID snowflake.ID) (*FeeStudentMapping, error)
	InsertStudentMapping(ctx context.Context, m *FeeStudentMapping) error
	UpdateStudentMapping(ctx context.Context, m *FeeStudentMapping) error

	WithDB(db *gorm.DB) Repository
}
