package violationrepo

import (
	"context"
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormViolationRepository implements ViolationRepository using GORM.
type GormViolationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormViolationRepository(db *gorm.DB, tracker aggregateTracker) *GormViolationRepository {
	return &GormViolationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a new report. The unique indexes reject duplicates with errs.ErrAlreadyExists.
func (r *GormViolationRepository) Add(ctx context.Context, aggregate *violation.Violation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewAlreadyExistsErrorWithCause("violation",
				fmt.Errorf("driver %s was already reported by %s: %w", aggregate.DriverID(), aggregate.ReporterID(), err))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormViolationRepository) Update(ctx context.Context, aggregate *violation.Violation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ViolationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":            dto.Status,
			"penalty":           dto.Penalty,
			"warning_count":     dto.WarningCount,
			"ban_driver":        dto.BanDriver,
			"ban_duration_days": dto.BanDurationDays,
			"admin_notes":       dto.AdminNotes,
			"handled_by":        dto.HandledBy,
			"resolved_at":       dto.ResolvedAt,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("violation",
			fmt.Errorf("violation %s was changed concurrently (loaded version %d)", aggregate.ID(), dto.Version))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormViolationRepository) Get(ctx context.Context, id kernel.UUID) (*violation.Violation, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormViolationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*violation.Violation, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormViolationRepository) get(query *gorm.DB, id kernel.UUID) (*violation.Violation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ViolationDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("violation", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
