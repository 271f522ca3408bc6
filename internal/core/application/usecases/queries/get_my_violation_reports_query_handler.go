package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetMyViolationReportsQueryHandler struct {
	db *gorm.DB
}

func NewGetMyViolationReportsQueryHandler(db *gorm.DB) GetMyViolationReportsQueryHandler {
	return GetMyViolationReportsQueryHandler{db: db}
}

func (h GetMyViolationReportsQueryHandler) Handle(
	ctx context.Context,
	query GetMyViolationReportsQuery,
) (Page[ViolationView], error) {
	if err := query.Validate(); err != nil {
		return Page[ViolationView]{}, err
	}

	db := h.db.WithContext(ctx)
	reporterID := query.ReporterID().Bytes()
	p := query.Pagination()

	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM violations WHERE reporter_id = ?`, reporterID).Scan(&total).Error; err != nil {
		return Page[ViolationView]{}, err
	}

	rows, err := db.Raw(`
		SELECT `+violationColumns+`
		FROM violations
		WHERE reporter_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, reporterID, p.Limit, p.Offset()).Rows()
	if err != nil {
		return Page[ViolationView]{}, err
	}

	items, err := collectViolations(rows)
	if err != nil {
		return Page[ViolationView]{}, err
	}
	return Page[ViolationView]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
