package withdrawalrepo

import (
	"context"
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
type GormWithdrawalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormWithdrawalRepository(db *gorm.DB, tracker aggregateTracker) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormWithdrawalRepository) Add(ctx context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the mutable columns when the stored version still matches.
func (r *GormWithdrawalRepository) Update(ctx context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WithdrawalDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":           dto.Status,
			"rejection_reason": dto.RejectionReason,
			"admin_note":       dto.AdminNote,
			"processed_by":     dto.ProcessedBy,
			"processed_at":     dto.ProcessedAt,
			"completed_at":     dto.CompletedAt,
			"cancelled_at":     dto.CancelledAt,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("withdrawal",
			fmt.Errorf("withdrawal %s was changed concurrently (loaded version %d)", aggregate.ID(), dto.Version))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormWithdrawalRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWithdrawalRepository) get(query *gorm.DB, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WithdrawalDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawal", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
