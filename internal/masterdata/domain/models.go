// Package domain contains the administrative master data the reconciliation
// engine resolves against. Every table here is owned by upstream admin
// workflows; the engine only reads them.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const ClassTypeSemester = "SEMESTER"

type FeeCategory struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (FeeCategory) TableName() string { return "fee_categories" }

type FeeSlab struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null" json:"name"`
}

func (FeeSlab) TableName() string { return "fee_slabs" }

// FeeGroup is a concrete fee package under one category and slab.
type FeeGroup struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	FeeCategoryID snowflake.ID `gorm:"not null;index" json:"fee_category_id"`
	FeeSlabID     snowflake.ID `gorm:"not null" json:"fee_slab_id"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (FeeGroup) TableName() string { return "fee_groups" }

type Student struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	UID  string       `gorm:"column:uid;type:text;not null;uniqueIndex" json:"uid"`
	Name string       `gorm:"type:text" json:"name"`
}

func (Student) TableName() string { return "students" }

type Class struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null" json:"name"`
	Type string       `gorm:"type:text;not null" json:"type"`
}

func (Class) TableName() string { return "classes" }

type AcademicYear struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null" json:"name"`
}

func (AcademicYear) TableName() string { return "academic_years" }

type Session struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	AcademicYearID snowflake.ID `gorm:"not null;index" json:"academic_year_id"`
	Name           string       `gorm:"type:text" json:"name"`
}

func (Session) TableName() string { return "sessions" }

type Shift struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text" json:"name"`
}

func (Shift) TableName() string { return "shifts" }

type ProgramCourse struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text" json:"name"`
}

func (ProgramCourse) TableName() string { return "program_courses" }

// Promotion is a student's enrollment snapshot for one term. A student may
// carry several promotions; the engine always works with the most recently
// created one for a (student, class) pair.
type Promotion struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID       snowflake.ID `gorm:"not null;index" json:"student_id"`
	ClassID         snowflake.ID `gorm:"not null;index" json:"class_id"`
	SessionID       snowflake.ID `gorm:"not null" json:"session_id"`
	ShiftID         snowflake.ID `gorm:"not null" json:"shift_id"`
	ProgramCourseID snowflake.ID `gorm:"not null" json:"program_course_id"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
}

func (Promotion) TableName() string { return "promotions" }
