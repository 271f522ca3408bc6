package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListViolationsQueryHandler struct {
	db *gorm.DB
}

func NewListViolationsQueryHandler(db *gorm.DB) ListViolationsQueryHandler {
	return ListViolationsQueryHandler{db: db}
}

func (h ListViolationsQueryHandler) Handle(ctx context.Context, query ListViolationsQuery) (Page[ViolationView], error) {
	if err := query.Validate(); err != nil {
		return Page[ViolationView]{}, err
	}

	where := ``
	args := make([]any, 0, 3)
	if status := query.Status(); status != nil {
		where = `WHERE status = ?`
		args = append(args, int(*status))
	}

	db := h.db.WithContext(ctx)
	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM violations `+where, args...).Scan(&total).Error; err != nil {
		return Page[ViolationView]{}, err
	}

	p := query.Pagination()
	rows, err := db.Raw(`
		SELECT `+violationColumns+`
		FROM violations
		`+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, append(args, p.Limit, p.Offset())...).Rows()
	if err != nil {
		return Page[ViolationView]{}, err
	}

	items, err := collectViolations(rows)
	if err != nil {
		return Page[ViolationView]{}, err
	}
	return Page[ViolationView]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
