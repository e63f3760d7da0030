package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	cascadedomain "github.com/campuslabs/feeflow/internal/cascade/domain"
	"github.com/campuslabs/feeflow/internal/clock"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	"github.com/campuslabs/feeflow/internal/mapping/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Cascade cascadedomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	cascade cascadedomain.Service
}

func NewService(p Params) mappingdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("mapping.service"),
		clock:   p.Clock,
		cascade: p.Cascade,
	}
}

func (s *Service) UpdateFeeGroup(ctx context.Context, mappingID, newFeeGroupID, actorID snowflake.ID) (*mappingdomain.FeeGroupPromotionMapping, error) {
	if newFeeGroupID == 0 {
		return nil, mappingdomain.ErrInvalidFeeGroup
	}

	var updated *mappingdomain.FeeGroupPromotionMapping
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := repository.NewRepository(tx)

		existing, err := store.FindByID(ctx, mappingID)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}

		changed := existing.FeeGroupID != newFeeGroupID
		updated, err = store.Update(ctx, mappingID, mappingdomain.UpdatePatch{FeeGroupID: &newFeeGroupID}, actorID, s.clock.Now(ctx))
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		s.log.Info("mapping fee group changed, recalculating payables",
			zap.Int64("mapping_id", int64(mappingID)),
			zap.Int64("promotion_id", int64(existing.PromotionID)))
		return s.cascade.RecalculatePromotion(ctx, tx, existing.PromotionID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
