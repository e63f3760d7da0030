// Package domain holds fee structure definitions and the derived per-student
// payable rows the cascade maintains.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FeeStructure defines the fees charged for one academic context. Read-only
// to the engine.
type FeeStructure struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	AcademicYearID  snowflake.ID `gorm:"not null;index" json:"academic_year_id"`
	ClassID         snowflake.ID `gorm:"not null;index" json:"class_id"`
	ProgramCourseID snowflake.ID `gorm:"not null" json:"program_course_id"`
	ShiftID         snowflake.ID `gorm:"not null" json:"shift_id"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

// FeeStructureComponent is one line item. Amounts may be fractional in the
// master data; payable totals are rounded to whole currency units.
type FeeStructureComponent struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	FeeStructureID snowflake.ID `gorm:"not null;index" json:"fee_structure_id"`
	Name           string       `gorm:"type:text" json:"name"`
	Amount         float64      `gorm:"not null" json:"amount"`
}

func (FeeStructureComponent) TableName() string { return "fee_structure_components" }

// FeeStudentMapping is the derived amount a student owes for one structure.
// Owned by the cascade: created and updated there, never deleted.
type FeeStudentMapping struct {
	ID                         snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID                  snowflake.ID `gorm:"not null;index:ux_fee_student,unique" json:"student_id"`
	FeeStructureID             snowflake.ID `gorm:"not null;index:ux_fee_student,unique" json:"fee_structure_id"`
	FeeGroupPromotionMappingID snowflake.ID `gorm:"not null;index" json:"fee_group_promotion_mapping_id"`
	TotalPayable               int64        `gorm:"not null" json:"total_payable"`
	IsWaivedOff                bool         `gorm:"not null;default:false" json:"is_waived_off"`
	WaivedOffAmount            int64        `gorm:"not null;default:0" json:"waived_off_amount"`
	CreatedAt                  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt                  time.Time    `gorm:"not null" json:"updated_at"`
}

func (FeeStudentMapping) TableName() string { return "fee_student_mappings" }
