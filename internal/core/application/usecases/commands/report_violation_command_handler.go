package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/violation"
)

// ReportViolationCommandHandler stores a new Pending report. Duplicates are refused by the
// repository with errs.ErrAlreadyExists.
type ReportViolationCommandHandler struct {
	uowFactory ViolationUoWFactory
}

func NewReportViolationCommandHandler(uowFactory ViolationUoWFactory) ReportViolationCommandHandler {
	return ReportViolationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ReportViolationCommandHandler) Handle(
	ctx context.Context,
	cmd ReportViolationCommand,
) (*violation.Violation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	v, err := violation.NewViolation(cmd.ViolationID(), cmd.Report(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ViolationRepository().Add(ctx, v); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return v, nil
}
