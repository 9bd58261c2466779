package desk

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found in the loaded month")
	ErrOrderLocked   = errors.New("order is fulfilled and can no longer be edited")
	ErrNoMonthFile   = errors.New("no order file is loaded for this month")
	ErrRowBusy       = errors.New("order is already being updated")
	ErrNotConfirmed  = errors.New("fulfillment must be confirmed")
	ErrSubmitting    = errors.New("another submission is in progress")
)

type MonthFileError struct {
	Month   string
	Message string
}

func (e *MonthFileError) Error() string {
	return fmt.Sprintf("could not create order file for %s: %s", e.Month, e.Message)
}
