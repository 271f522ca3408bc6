package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListWithdrawalsQueryHandler struct {
	db *gorm.DB
}

func NewListWithdrawalsQueryHandler(db *gorm.DB) ListWithdrawalsQueryHandler {
	return ListWithdrawalsQueryHandler{db: db}
}

func (h ListWithdrawalsQueryHandler) Handle(ctx context.Context, query ListWithdrawalsQuery) (Page[WithdrawalView], error) {
	if err := query.Validate(); err != nil {
		return Page[WithdrawalView]{}, err
	}

	where := ``
	args := make([]any, 0, 3)
	if status := query.Status(); status != nil {
		where = `WHERE status = ?`
		args = append(args, int(*status))
	}

	db := h.db.WithContext(ctx)
	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM withdrawals `+where, args...).Scan(&total).Error; err != nil {
		return Page[WithdrawalView]{}, err
	}

	p := query.Pagination()
	rows, err := db.Raw(`
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		`+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, append(args, p.Limit, p.Offset())...).Rows()
	if err != nil {
		return Page[WithdrawalView]{}, err
	}

	items, err := collectWithdrawals(rows)
	if err != nil {
		return Page[WithdrawalView]{}, err
	}
	return Page[WithdrawalView]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}
