package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/services"
	"settlement/internal/core/ports"
)

// ChangeViolationStatusCommandHandler applies administrator decisions to violation reports.
//
// Resolving with a penalty debits the driver's ledger in the same transaction and fails
// with an InsufficientBalanceError when the balance cannot cover it. A ban decision is
// stored with the report; the suspension itself is written to the driver-status store
// after commit and a failure there is logged, not returned.
type ChangeViolationStatusCommandHandler struct {
	uowFactory  ViolationUoWFactory
	settlement  services.Settlement
	suspensions ports.DriverSuspensions
	logger      *slog.Logger
}

func NewChangeViolationStatusCommandHandler(
	uowFactory ViolationUoWFactory,
	settlement services.Settlement,
	suspensions ports.DriverSuspensions,
	logger *slog.Logger,
) ChangeViolationStatusCommandHandler {
	return ChangeViolationStatusCommandHandler{
		uowFactory:  uowFactory,
		settlement:  settlement,
		suspensions: suspensions,
		logger:      logger,
	}
}

func (h *ChangeViolationStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeViolationStatusCommand,
) (*violation.Violation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	violationRepo := uow.ViolationRepository()
	v, err := violationRepo.GetForUpdate(ctx, cmd.ViolationID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch cmd.Status() {
	case violation.Investigating:
		err = v.StartInvestigation(cmd.AdminID(), cmd.Notes(), now)
	case violation.Dismissed:
		err = v.Dismiss(cmd.AdminID(), cmd.Notes(), now)
	case violation.Resolved:
		err = h.resolve(ctx, uow, v, cmd, now)
	}
	if err != nil {
		return nil, err
	}

	if err = violationRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if r := v.Resolution(); v.Status() == violation.Resolved && r.BanDriver {
		h.suspend(ctx, v, r)
	}
	return v, nil
}

func (h *ChangeViolationStatusCommandHandler) resolve(
	ctx context.Context,
	uow ViolationUoW,
	v *violation.Violation,
	cmd ChangeViolationStatusCommand,
	at time.Time,
) error {
	r := cmd.Resolution()
	if err := v.ValidateResolve(r); err != nil {
		return err
	}
	if !r.Penalty.IsPositive() {
		return v.Resolve(cmd.AdminID(), r, cmd.Notes(), at)
	}

	ledgerRepo := uow.LedgerRepository()
	l, err := ledgerRepo.GetForUpdate(ctx, v.DriverID())
	if err != nil {
		return err
	}

	if err = h.settlement.ResolveViolation(v, l, cmd.AdminID(), r, cmd.Notes(), at); err != nil {
		return err
	}

	return ledgerRepo.Save(ctx, l)
}

func (h *ChangeViolationStatusCommandHandler) suspend(ctx context.Context, v *violation.Violation, r violation.Resolution) {
	duration := time.Duration(r.BanDurationDays) * 24 * time.Hour
	reason := fmt.Sprintf("violation %s resolved: %s", v.ID(), v.Type())

	if err := h.suspensions.Suspend(ctx, v.DriverID(), duration, reason); err != nil {
		h.logger.ErrorContext(ctx, "failed to suspend driver",
			slog.String("driver_id", v.DriverID().String()),
			slog.String("violation_id", v.ID().String()),
			slog.Any("error", err),
		)
		return
	}

	h.logger.InfoContext(ctx, "driver suspended",
		slog.String("driver_id", v.DriverID().String()),
		slog.Int("days", r.BanDurationDays),
	)
}
