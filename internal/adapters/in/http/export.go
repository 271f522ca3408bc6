package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const (
	withdrawalsSheet = "Withdrawals"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var withdrawalColumns = []any{
	"ID", "Driver ID", "Status", "Requested amount", "Actual amount", "System fee",
	"Account name", "Account number", "Bank", "Bank code", "Driver note",
	"Rejection reason", "Admin note", "Created at", "Processed at", "Completed at", "Cancelled at",
}

// ExportWithdrawals handles GET /api/admin/withdrawals/export - the filtered list as an
// xlsx workbook.
func (s *Server) ExportWithdrawals(c echo.Context) error {
	status, err := queryWithdrawalStatus(c)
	if err != nil {
		return err
	}
	items, err := s.allWithdrawals(c.Request().Context(), status)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = WriteWithdrawalsSheet(&buf, items); err != nil {
		return err
	}

	filename := fmt.Sprintf("withdrawals_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) allWithdrawals(ctx context.Context, status *withdrawal.Status) ([]queries.WithdrawalView, error) {
	var items []queries.WithdrawalView
	for pageNumber := 1; ; pageNumber++ {
		pagination, err := queries.NewPagination(pageNumber, queries.MaxPageLimit)
		if err != nil {
			return nil, err
		}
		query, err := queries.NewListWithdrawalsQuery(status, pagination)
		if err != nil {
			return nil, err
		}
		result, err := s.handlers.ListWithdrawals.Handle(ctx, query)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if len(result.Items) < queries.MaxPageLimit || int64(len(items)) >= result.Total {
			return items, nil
		}
	}
}

// WriteWithdrawalsSheet writes items as a single-sheet workbook, one request per row.
func WriteWithdrawalsSheet(w io.Writer, items []queries.WithdrawalView) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", withdrawalsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(withdrawalsSheet, "A1", &withdrawalColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			item.ID.String(),
			item.DriverID.String(),
			item.Status,
			item.RequestedAmount.Int64(),
			item.ActualAmount.Int64(),
			item.SystemFee.Int64(),
			item.BankAccountName,
			item.BankAccountNumber,
			item.BankName,
			item.BankCode,
			item.DriverNote,
			item.RejectionReason,
			item.AdminNote,
			formatTime(&item.CreatedAt),
			formatTime(item.ProcessedAt),
			formatTime(item.CompletedAt),
			formatTime(item.CancelledAt),
		}
		if err = f.SetSheetRow(withdrawalsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
