package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	cascadedomain "github.com/campuslabs/feeflow/internal/cascade/domain"
	"github.com/campuslabs/feeflow/internal/clock"
	"github.com/campuslabs/feeflow/internal/config"
	feedomain "github.com/campuslabs/feeflow/internal/feestructure/domain"
	feerepo "github.com/campuslabs/feeflow/internal/feestructure/repository"
	mappingrepo "github.com/campuslabs/feeflow/internal/mapping/repository"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	masterrepo "github.com/campuslabs/feeflow/internal/masterdata/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   config.Config
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	policy masterdomain.SelectionPolicy
}

func NewService(p Params) (cascadedomain.Service, error) {
	policy, err := masterdomain.ParseSelectionPolicy(p.Cfg.Reconcile.GroupSelection)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("cascade.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		policy: policy,
	}, nil
}

func (s *Service) RecalculatePromotion(ctx context.Context, tx *gorm.DB, promotionID snowflake.ID) error {
	if tx == nil {
		tx = s.db
	}

	mappings, err := mappingrepo.NewRepository(tx).ListByPromotion(ctx, promotionID)
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		return nil
	}
	if len(mappings) > 1 {
		if s.policy == masterdomain.SelectErrorIfAmbiguous {
			return cascadedomain.ErrAmbiguousMapping
		}
		s.log.Warn("promotion has multiple fee group mappings, using oldest",
			zap.Int64("promotion_id", int64(promotionID)),
			zap.Int("mappings", len(mappings)))
	}
	authoritative := mappings[0]

	resolver := masterrepo.NewRepository(tx)
	promotion, err := resolver.FindPromotion(ctx, promotionID)
	if err != nil {
		return err
	}
	if promotion == nil {
		return cascadedomain.ErrPromotionNotFound
	}

	session, err := resolver.FindSession(ctx, promotion.SessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return cascadedomain.ErrSessionNotFound
	}

	structures := feerepo.NewRepository(tx)
	matching, err := structures.ListByAcademicContext(ctx, feedomain.AcademicContext{
		AcademicYearID:  session.AcademicYearID,
		ClassID:         promotion.ClassID,
		ProgramCourseID: promotion.ProgramCourseID,
		ShiftID:         promotion.ShiftID,
	})
	if err != nil {
		return err
	}

	for _, structure := range matching {
		if err := s.upsertPayable(ctx, structures, promotion, structure, authoritative.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) upsertPayable(
	ctx context.Context,
	repo feedomain.Repository,
	promotion *masterdomain.Promotion,
	structure feedomain.FeeStructure,
	mappingID snowflake.ID,
) error {
	total, err := feedomain.TotalPayable(ctx, repo, structure.ID)
	if err != nil {
		return err
	}

	existing, err := repo.FindStudentMapping(ctx, promotion.StudentID, structure.ID)
	if err != nil {
		return err
	}

	now := s.clock.Now(ctx)
	if existing != nil {
		existing.FeeGroupPromotionMappingID = mappingID
		existing.TotalPayable = feedomain.ApplyWaiver(total, existing.IsWaivedOff, existing.WaivedOffAmount)
		existing.UpdatedAt = now
		return repo.UpdateStudentMapping(ctx, existing)
	}

	return repo.InsertStudentMapping(ctx, &feedomain.FeeStudentMapping{
		ID:                         s.genID.Generate(),
		StudentID:                  promotion.StudentID,
		FeeStructureID:             structure.ID,
		FeeGroupPromotionMappingID: mappingID,
		TotalPayable:               total,
		IsWaivedOff:                false,
		WaivedOffAmount:            0,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	})
}
