package http

import (
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"
)

func withdrawalView(w *withdrawal.Withdrawal) queries.WithdrawalView {
	s := w.Snapshot()
	return queries.WithdrawalView{
		ID:                s.ID,
		DriverID:          s.DriverID,
		RequestedAmount:   s.RequestedAmount,
		ActualAmount:      s.ActualAmount,
		SystemFee:         s.SystemFee,
		BankAccountName:   s.Account.AccountName,
		BankAccountNumber: s.Account.AccountNumber,
		BankName:          s.Account.BankName,
		BankCode:          s.Account.BankCode,
		DriverNote:        s.DriverNote,
		Status:            s.Status.String(),
		RejectionReason:   s.RejectionReason,
		AdminNote:         s.AdminNote,
		ProcessedBy:       s.ProcessedBy,
		CreatedAt:         s.CreatedAt,
		ProcessedAt:       s.ProcessedAt,
		CompletedAt:       s.CompletedAt,
		CancelledAt:       s.CancelledAt,
	}
}

func violationView(v *violation.Violation) queries.ViolationView {
	s := v.Snapshot()
	evidence := s.Report.EvidenceURLs
	if evidence == nil {
		evidence = []string{}
	}
	return queries.ViolationView{
		ID:              s.ID,
		ReporterID:      s.Report.ReporterID,
		DriverID:        s.Report.DriverID,
		OrderID:         s.Report.OrderID,
		Type:            s.Report.Type.String(),
		Severity:        s.Report.Severity.String(),
		Description:     s.Report.Description,
		EvidenceURLs:    evidence,
		Status:          s.Status.String(),
		Penalty:         s.Resolution.Penalty,
		WarningCount:    s.Resolution.WarningCount,
		BanDriver:       s.Resolution.BanDriver,
		BanDurationDays: s.Resolution.BanDurationDays,
		AdminNotes:      s.AdminNotes,
		HandledBy:       s.HandledBy,
		CreatedAt:       s.CreatedAt,
		ResolvedAt:      s.ResolvedAt,
	}
}

func priceView(p pricing.PriceBreakdown) queries.PriceBreakdownView {
	return queries.PriceBreakdownView{
		BasePerKm:    p.BasePerKm(),
		DistanceCost: p.DistanceCost(),
		LoadCost:     p.LoadCost(),
		InsuranceFee: p.InsuranceFee(),
		Total:        p.Total(),
	}
}
