package http

import (
	"net/http"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/labstack/echo/v4"
)

type WithdrawalRequest struct {
	RequestedAmount        int64  `json:"requestedAmount"        validate:"required,gt=0"`
	BankAccountName        string `json:"bankAccountName"        validate:"required,max=255"`
	BankAccountNumber      string `json:"bankAccountNumber"      validate:"required,max=64"`
	ConfirmedAccountNumber string `json:"confirmedAccountNumber" validate:"required,max=64"`
	BankName               string `json:"bankName"               validate:"required,max=255"`
	BankCode               string `json:"bankCode"               validate:"max=32"`
	DriverNote             string `json:"driverNote"             validate:"max=1000"`
}

type WithdrawalDecisionRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"max=1000"`
	AdminNote       string `json:"adminNote"       validate:"max=1000"`
}

// RequestWithdrawal handles POST /api/driver/withdrawal/request.
func (s *Server) RequestWithdrawal(c echo.Context) error {
	var req WithdrawalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRequestWithdrawalCommand(kernel.NewUUID(), withdrawal.Request{
		DriverID:        principalFrom(c).ID,
		RequestedAmount: kernel.Money(req.RequestedAmount),
		Account: withdrawal.BankAccount{
			AccountName:   req.BankAccountName,
			AccountNumber: req.BankAccountNumber,
			BankName:      req.BankName,
			BankCode:      req.BankCode,
		},
		ConfirmedAccountNumber: req.ConfirmedAccountNumber,
		DriverNote:             req.DriverNote,
	})
	if err != nil {
		return err
	}

	w, err := s.handlers.RequestWithdrawal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return created(c, withdrawalView(w), "Withdrawal request submitted")
}

// GetWithdrawalHistory handles GET /api/driver/withdrawal/history.
func (s *Server) GetWithdrawalHistory(c echo.Context) error {
	pagination, err := queryPagination(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDriverWithdrawalsQuery(principalFrom(c).ID, pagination)
	if err != nil {
		return err
	}
	result, err := s.handlers.GetDriverWithdrawals.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return page(c, result)
}

// GetDriverWithdrawal handles GET /api/driver/withdrawal/:id. Requests of other drivers
// are reported as not found.
func (s *Server) GetDriverWithdrawal(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetDriverWithdrawalQuery(id, principalFrom(c).ID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetWithdrawal.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, view)
}

// CancelWithdrawal handles PUT /api/driver/withdrawal/:id/cancel.
func (s *Server) CancelWithdrawal(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	driverID := principalFrom(c).ID
	cmd, err := commands.NewCancelWithdrawalCommand(id, driverID)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelWithdrawal.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetDriverWithdrawalQuery(id, driverID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetWithdrawal.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, view, "Withdrawal request cancelled")
}

// GetDriverBalance handles GET /api/driver/balance.
func (s *Server) GetDriverBalance(c echo.Context) error {
	recent, err := queryInt(c, "recent")
	if err != nil {
		return err
	}
	query, err := queries.NewGetDriverBalanceQuery(principalFrom(c).ID, recent)
	if err != nil {
		return err
	}
	balance, err := s.handlers.GetDriverBalance.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, balance)
}

// ListWithdrawals handles GET /api/admin/withdrawals.
func (s *Server) ListWithdrawals(c echo.Context) error {
	status, err := queryWithdrawalStatus(c)
	if err != nil {
		return err
	}
	pagination, err := queryPagination(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListWithdrawalsQuery(status, pagination)
	if err != nil {
		return err
	}
	result, err := s.handlers.ListWithdrawals.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return page(c, result)
}

// GetWithdrawalStats handles GET /api/admin/withdrawals/stats.
func (s *Server) GetWithdrawalStats(c echo.Context) error {
	stats, err := s.handlers.GetWithdrawalStats.Handle(c.Request().Context(), queries.NewGetWithdrawalStatsQuery())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

// GetWithdrawal handles GET /api/admin/withdrawals/:id.
func (s *Server) GetWithdrawal(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetWithdrawalQuery(id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetWithdrawal.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, view)
}

// ApproveWithdrawal handles PUT /api/admin/withdrawals/:id/approve.
func (s *Server) ApproveWithdrawal(c echo.Context) error {
	return s.reviewWithdrawal(c, commands.Approve, "Withdrawal request approved")
}

// RejectWithdrawal handles PUT /api/admin/withdrawals/:id/reject.
func (s *Server) RejectWithdrawal(c echo.Context) error {
	return s.reviewWithdrawal(c, commands.Reject, "Withdrawal request rejected")
}

// CompleteWithdrawal handles PUT /api/admin/withdrawals/:id/complete - settles the
// request against the driver's balance.
func (s *Server) CompleteWithdrawal(c echo.Context) error {
	return s.reviewWithdrawal(c, commands.Complete, "Withdrawal completed")
}

func (s *Server) reviewWithdrawal(c echo.Context, decision commands.Decision, message string) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req WithdrawalDecisionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewReviewWithdrawalCommand(id, principalFrom(c).ID, decision, req.RejectionReason, req.AdminNote)
	if err != nil {
		return err
	}
	w, err := s.handlers.ReviewWithdrawal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, withdrawalView(w), message)
}
