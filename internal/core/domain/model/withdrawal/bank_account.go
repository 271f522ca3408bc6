package withdrawal

import (
	"errors"
	"strings"

	"settlement/internal/pkg/errs"
)

// BankAccount is the destination of the external transfer.
type BankAccount struct {
	AccountName   string
	AccountNumber string
	BankName      string
	BankCode      string
}

// Validate requires holder name, number and bank name. BankCode is optional.
func (b BankAccount) Validate() error {
	var nameErr, numberErr, bankErr error
	if strings.TrimSpace(b.AccountName) == "" {
		nameErr = errs.NewValueIsRequiredError("bankAccountName")
	}
	if strings.TrimSpace(b.AccountNumber) == "" {
		numberErr = errs.NewValueIsRequiredError("bankAccountNumber")
	}
	if strings.TrimSpace(b.BankName) == "" {
		bankErr = errs.NewValueIsRequiredError("bankName")
	}
	return errors.Join(nameErr, numberErr, bankErr)
}
