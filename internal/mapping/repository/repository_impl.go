package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) mappingdomain.Repository {
	return &repository{db: db}
}

func (r *repository) WithDB(db *gorm.DB) mappingdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*mappingdomain.FeeGroupPromotionMapping, error) {
	var m mappingdomain.FeeGroupPromotionMapping
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByPair(ctx context.Context, feeGroupID, promotionID snowflake.ID) (*mappingdomain.FeeGroupPromotionMapping, error) {
	var m mappingdomain.FeeGroupPromotionMapping
	err := r.db.WithContext(ctx).
		Where("fee_group_id = ? AND promotion_id = ?", feeGroupID, promotionID).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindOrCreate(ctx context.Context, row *mappingdomain.FeeGroupPromotionMapping) (*mappingdomain.FeeGroupPromotionMapping, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fee_group_id"}, {Name: "promotion_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return row, true, nil
	}

	existing, err := r.FindByPair(ctx, row.FeeGroupID, row.PromotionID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errors.New("mapping vanished after conflict")
	}
	return existing, false, nil
}

func (r *repository) Update(ctx context.Context, id snowflake.ID, patch mappingdomain.UpdatePatch, actorID snowflake.ID, now time.Time) (*mappingdomain.FeeGroupPromotionMapping, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{
		"updated_by_user_id": actorID,
		"updated_at":         now,
	}
	if patch.FeeGroupID != nil {
		fields["fee_group_id"] = *patch.FeeGroupID
	}

	err = r.db.WithContext(ctx).
		Model(&mappingdomain.FeeGroupPromotionMapping{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *repository) ListByPromotion(ctx context.Context, promotionID snowflake.ID) ([]mappingdomain.FeeGroupPromotionMapping, error) {
	var rows []mappingdomain.FeeGroupPromotionMapping
	err := r.db.WithContext(ctx).
		Where("promotion_id = ?", promotionID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
