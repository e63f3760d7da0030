package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) masterdomain.Resolver {
	return &repository{db: db}
}

func (r *repository) WithDB(db *gorm.DB) masterdomain.Resolver {
	return &repository{db: db}
}

func (r *repository) LoadCategoryTable(ctx context.Context) (masterdomain.CategoryTable, error) {
	var categories []masterdomain.FeeCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}

	table := make(masterdomain.CategoryTable, len(categories))
	for _, c := range categories {
		table[masterdomain.NormalizeCategoryName(c.Name)] = c.ID
	}
	return table, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]masterdomain.FeeCategory, error) {
	var categories []masterdomain.FeeCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) FindFirstGroupByCategory(ctx context.Context, categoryID snowflake.ID, policy masterdomain.SelectionPolicy) (*masterdomain.FeeGroup, error) {
	var groups []masterdomain.FeeGroup
	err := r.db.WithContext(ctx).
		Where("fee_category_id = ?", categoryID).
		Order("created_at ASC, id ASC").
		Limit(2).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	if len(groups) > 1 && policy == masterdomain.SelectErrorIfAmbiguous {
		return nil, masterdomain.ErrAmbiguousFeeGroup
	}
	return &groups[0], nil
}

func (r *repository) FindStudentByUID(ctx context.Context, uid string) (*masterdomain.Student, error) {
	var student masterdomain.Student
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *repository) FindClassByName(ctx context.Context, name, classType string) (*masterdomain.Class, error) {
	var class masterdomain.Class
	err := r.db.WithContext(ctx).
		Where("name = ? AND type = ?", name, classType).
		First(&class).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

func (r *repository) FindLatestPromotion(ctx context.Context, studentID, classID snowflake.ID) (*masterdomain.Promotion, error) {
	var promotion masterdomain.Promotion
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Order("created_at DESC, id DESC").
		First(&promotion).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *repository) FindPromotion(ctx context.Context, id snowflake.ID) (*masterdomain.Promotion, error) {
	var promotion masterdomain.Promotion
	err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *repository) FindSession(ctx context.Context, id snowflake.ID) (*masterdomain.Session, error) {
	var session masterdomain.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}
