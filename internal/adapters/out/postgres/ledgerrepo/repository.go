package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetForUpdate inserts an empty ledger row for drivers that have none yet and then locks
// the row. Concurrent first-time callers race on the insert harmlessly.
func (r *GormLedgerRepository) GetForUpdate(ctx context.Context, driverID kernel.UUID) (*ledger.DriverLedger, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	empty := LedgerDTO{
		DriverID:  driverID.Bytes(),
		UpdatedAt: time.Now().UTC(),
		Version:   1,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&empty).Error; err != nil {
		return nil, err
	}

	var dto LedgerDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "driver_id = ?", driverID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledger", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save writes the balance and appends the ledger's new entries. A duplicate
// (kind, reference) entry means the movement was already applied and is reported as
// errs.ErrAlreadyExists.
func (r *GormLedgerRepository) Save(ctx context.Context, aggregate *ledger.DriverLedger) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&LedgerDTO{}).
		Where("driver_id = ? AND version = ?", aggregate.DriverID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"balance":    aggregate.Balance().Int64(),
			"updated_at": aggregate.UpdatedAt(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("ledger",
			fmt.Errorf("ledger of driver %s was changed concurrently (loaded version %d)",
				aggregate.DriverID(), aggregate.Version()))
	}

	entries := aggregate.NewEntries()
	if len(entries) > 0 {
		dtos := make([]EntryDTO, 0, len(entries))
		for _, e := range entries {
			dtos = append(dtos, entryFromDomain(e))
		}
		if err := db.Create(&dtos).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return errs.NewAlreadyExistsErrorWithCause("ledgerEntry", err)
			}
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.DriverID(), aggregate)
	return nil
}
