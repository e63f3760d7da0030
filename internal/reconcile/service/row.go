package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	mappingrepo "github.com/campuslabs/feeflow/internal/mapping/repository"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"github.com/campuslabs/feeflow/internal/reconcile/domain"
	"gorm.io/gorm"
)

type rowOutcome struct {
	mappingID snowflake.ID
	created   bool
	reason    string // empty means success
}

func failed(reason string) rowOutcome { return rowOutcome{reason: reason} }

// processRow runs the per-row state machine. Every failure, including store
// failures during the write phase, is converted into a row outcome; nothing
// here aborts the batch.
func (s *Service) processRow(ctx context.Context, table masterdomain.CategoryTable, row domain.RowInput, actorID snowflake.ID) rowOutcome {
	uid := strings.TrimSpace(row.UID)
	term := strings.TrimSpace(row.Term)
	categoryName := strings.TrimSpace(row.FeeCategoryName)
	if uid == "" || term == "" || categoryName == "" {
		return failed(domain.ReasonRequiredFieldsMissing)
	}

	categoryID, ok := table.Lookup(categoryName)
	if !ok {
		return failed(domain.ReasonCategoryNotFound)
	}

	group, err := s.resolver.FindFirstGroupByCategory(ctx, categoryID, s.policy)
	if err != nil {
		return failed(err.Error())
	}
	if group == nil {
		return failed(domain.ReasonNoGroupForCategory)
	}

	student, err := s.resolver.FindStudentByUID(ctx, uid)
	if err != nil {
		return failed(err.Error())
	}
	if student == nil {
		return failed(domain.ReasonStudentNotFound)
	}

	class, err := s.resolver.FindClassByName(ctx, term, masterdomain.ClassTypeSemester)
	if err != nil {
		return failed(err.Error())
	}
	if class == nil {
		return failed(domain.ReasonClassNotFound)
	}

	promotion, err := s.resolver.FindLatestPromotion(ctx, student.ID, class.ID)
	if err != nil {
		return failed(err.Error())
	}
	if promotion == nil {
		return failed(domain.ReasonNoPromotion)
	}

	var (
		mapping *mappingdomain.FeeGroupPromotionMapping
		created bool
	)
	write := func(tx *gorm.DB) error {
		store := mappingrepo.NewRepository(tx)
		now := s.clock.Now(ctx)

		var err error
		mapping, created, err = store.FindOrCreate(ctx, &mappingdomain.FeeGroupPromotionMapping{
			ID:              s.genID.Generate(),
			FeeGroupID:      group.ID,
			PromotionID:     promotion.ID,
			CreatedByUserID: actorID,
			UpdatedByUserID: actorID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}

		// A cascade failure fails the row even though the mapping write
		// already went through; in non-transactional mode the mapping is
		// deliberately left in place.
		return s.cascade.RecalculatePromotion(ctx, tx, promotion.ID)
	}

	if s.transactional {
		err = s.db.WithContext(ctx).Transaction(write)
	} else {
		err = write(s.db)
	}
	if err != nil {
		return failed(err.Error())
	}

	return rowOutcome{mappingID: mapping.ID, created: created}
}
