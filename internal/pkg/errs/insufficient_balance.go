package errs

import (
	"errors"
	"fmt"
)

// ErrInsufficientBalance is the sentinel returned (via Unwrap) by InsufficientBalanceError.
var ErrInsufficientBalance = errors.New("insufficient balance")

// InsufficientBalanceError reports that debiting Requested from Balance would drive it negative.
type InsufficientBalanceError struct {
	DriverID  string
	Balance   int64
	Requested int64
}

func NewInsufficientBalanceError(driverID string, balance, requested int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		DriverID:  driverID,
		Balance:   balance,
		Requested: requested,
	}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: driver %s has %d, requested %d", ErrInsufficientBalance, e.DriverID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
