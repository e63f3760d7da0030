// Package seed provisions a small demo campus so a fresh environment has
// master data to reconcile against. Idempotent: every insert is keyed on a
// natural identifier and skipped when present.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	feedomain "github.com/campuslabs/feeflow/internal/feestructure/domain"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"gorm.io/gorm"
)

// DemoCampus wires one academic year, two semesters, two fee categories with
// one group each, two students, and one fee structure per semester.
func DemoCampus(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year, err := ensureAcademicYear(ctx, tx, node, "2026-27")
		if err != nil {
			return err
		}
		session, err := ensureSession(ctx, tx, node, year.ID, "2026-27 Regular")
		if err != nil {
			return err
		}
		shift, err := ensureShift(ctx, tx, node, "Morning")
		if err != nil {
			return err
		}
		course, err := ensureProgramCourse(ctx, tx, node, "B.Sc. Computer Science")
		if err != nil {
			return err
		}

		var classes []masterdomain.Class
		for _, name := range []string{"SEMESTER I", "SEMESTER II"} {
			class, err := ensureClass(ctx, tx, node, name, masterdomain.ClassTypeSemester)
			if err != nil {
				return err
			}
			classes = append(classes, *class)
		}

		slab, err := ensureSlab(ctx, tx, node, "General")
		if err != nil {
			return err
		}
		for _, name := range []string{"Tuition", "Hostel"} {
			category, err := ensureCategory(ctx, tx, node, name)
			if err != nil {
				return err
			}
			if err := ensureGroup(ctx, tx, node, category.ID, slab.ID); err != nil {
				return err
			}
		}

		for i, uid := range []string{"CS26-0001", "CS26-0002"} {
			student, err := ensureStudent(ctx, tx, node, uid)
			if err != nil {
				return err
			}
			if err := ensurePromotion(ctx, tx, node, student.ID, classes[i%len(classes)].ID, session.ID, shift.ID, course.ID); err != nil {
				return err
			}
		}

		for _, class := range classes {
			if err := ensureStructure(ctx, tx, node, year.ID, class.ID, course.ID, shift.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureAcademicYear(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*masterdomain.AcademicYear, error) {
	var year masterdomain.AcademicYear
	err := tx.WithContext(ctx).Where("name = ?", name).First(&year).Error
	if err == nil {
		return &year, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	year = masterdomain.AcademicYear{ID: node.Generate(), Name: name}
	return &year, tx.WithContext(ctx).Create(&year).Error
}

func ensureSession(ctx context.Context, tx *gorm.DB, node *snowflake.Node, yearID snowflake.ID, name string) (*masterdomain.Session, error) {
	var session masterdomain.Session
	err := tx.WithContext(ctx).Where("academic_year_id = ? AND name = ?", yearID, name).First(&session).Error
	if err == nil {
		return &session, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	session = masterdomain.Session{ID: node.Generate(), AcademicYearID: yearID, Name: name}
	return &session, tx.WithContext(ctx).Create(&session).Error
}

func ensureShift(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*masterdomain.Shift, error) {
	var shift masterdomain.Shift
	err := tx.WithContext(ctx).Where("name = ?", name).First(&shift).Error
	if err == nil {
		return &shift, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	shift = masterdomain.Shift{ID: node.Generate(), Name: name}
	return &shift, tx.WithContext(ctx).Create(&shift).Error
}

func ensureProgramCourse(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*masterdomain.ProgramCourse, error) {
	var course masterdomain.ProgramCourse
	err := tx.WithContext(ctx).Where("name = ?", name).First(&course).Error
	if err == nil {
		return &course, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	course = masterdomain.ProgramCourse{ID: node.Generate(), Name: name}
	return &course, tx.WithContext(ctx).Create(&course).Error
}

func ensureClass(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, classType string) (*masterdomain.Class, error) {
	var class masterdomain.Class
	err := tx.WithContext(ctx).Where("name = ? AND type = ?", name, classType).First(&class).Error
	if err == nil {
		return &class, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	class = masterdomain.Class{ID: node.Generate(), Name: name, Type: classType}
	return &class, tx.WithContext(ctx).Create(&class).Error
}

func ensureSlab(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*masterdomain.FeeSlab, error) {
	var slab masterdomain.FeeSlab
	err := tx.WithContext(ctx).Where("name = ?", name).First(&slab).Error
	if err == nil {
		return &slab, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	slab = masterdomain.FeeSlab{ID: node.Generate(), Name: name}
	return &slab, tx.WithContext(ctx).Create(&slab).Error
}

func ensureCategory(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*masterdomain.FeeCategory, error) {
	var category masterdomain.FeeCategory
	err := tx.WithContext(ctx).Where("LOWER(name) = ?", masterdomain.NormalizeCategoryName(name)).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	category = masterdomain.FeeCategory{ID: node.Generate(), Name: name}
	return &category, tx.WithContext(ctx).Create(&category).Error
}

func ensureGroup(ctx context.Context, tx *gorm.DB, node *snowflake.Node, categoryID, slabID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).Model(&masterdomain.FeeGroup{}).
		Where("fee_category_id = ?", categoryID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	return tx.WithContext(ctx).Create(&masterdomain.FeeGroup{
		ID:            node.Generate(),
		FeeCategoryID: categoryID,
		FeeSlabID:     slabID,
		CreatedAt:     time.Now().UTC(),
	}).Error
}

func ensureStudent(ctx context.Context, tx *gorm.DB, node *snowflake.Node, uid string) (*masterdomain.Student, error) {
	var student masterdomain.Student
	err := tx.WithContext(ctx).Where("uid = ?", uid).First(&student).Error
	if err == nil {
		return &student, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	student = masterdomain.Student{ID: node.Generate(), UID: uid, Name: "Demo Student " + uid}
	return &student, tx.WithContext(ctx).Create(&student).Error
}

func ensurePromotion(ctx context.Context, tx *gorm.DB, node *snowflake.Node, studentID, classID, sessionID, shiftID, courseID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).Model(&masterdomain.Promotion{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}
	return tx.WithContext(ctx).Create(&masterdomain.Promotion{
		ID:              node.Generate(),
		StudentID:       studentID,
		ClassID:         classID,
		SessionID:       sessionID,
		ShiftID:         shiftID,
		ProgramCourseID: courseID,
		CreatedAt:       time.Now().UTC(),
	}).Error
}

func ensureStructure(ctx context.Context, tx *gorm.DB, node *snowflake.Node, yearID, classID, courseID, shiftID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).Model(&feedomain.FeeStructure{}).
		Where("academic_year_id = ? AND class_id = ? AND program_course_id = ? AND shift_id = ?",
			yearID, classID, courseID, shiftID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}

	structure := feedomain.FeeStructure{
		ID:              node.Generate(),
		AcademicYearID:  yearID,
		ClassID:         classID,
		ProgramCourseID: courseID,
		ShiftID:         shiftID,
	}
	if err := tx.WithContext(ctx).Create(&structure).Error; err != nil {
		return err
	}

	components := []feedomain.FeeStructureComponent{
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Tuition", Amount: 42000},
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Library", Amount: 1500},
		{ID: node.Generate(), FeeStructureID: structure.ID, Name: "Laboratory", Amount: 2500},
	}
	return tx.WithContext(ctx).Create(&components).Error
}
