package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	feedomain "github.com/campuslabs/feeflow/internal/feestructure/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) feedomain.Repository {
	return &repository{db: db}
}

func (r *repository) WithDB(db *gorm.DB) feedomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListByAcademicContext(ctx context.Context, ac feedomain.AcademicContext) ([]feedomain.FeeStructure, error) {
	var structures []feedomain.FeeStructure
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ? AND class_id = ? AND program_course_id = ? AND shift_id = ?",
			ac.AcademicYearID, ac.ClassID, ac.ProgramCourseID, ac.ShiftID).
		Order("id ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) SumComponents(ctx context.Context, feeStructureID snowflake.ID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM fee_structure_components
		 WHERE fee_structure_id = ?`,
		feeStructureID,
	).Scan(&sum).Error
	return sum, err
}

func (r *repository) FindStudentMapping(ctx context.Context, studentID, feeStructureID snowflake.ID) (*feedomain.FeeStudentMapping, error) {
	var m feedomain.FeeStudentMapping
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND fee_structure_id = ?", studentID, feeStructureID).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) InsertStudentMapping(ctx context.Context, m *feedomain.FeeStudentMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) UpdateStudentMapping(ctx context.Context, m *feedomain.FeeStudentMapping) error {
	return r.db.WithContext(ctx).Model(&feedomain.FeeStudentMapping{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"fee_group_promotion_mapping_id": m.FeeGroupPromotionMappingID,
			"total_payable":                  m.TotalPayable,
			"updated_at":                     m.UpdatedAt,
		}).Error
}
