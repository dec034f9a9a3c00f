// Package validate checks canonical drafts before they become eligible for
// persistence. Every failed check yields a distinct code; validation never
// fails a file, only individual rows.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

// Validation error codes.
const (
	CodeBadDate          = "bad_date"
	CodeFutureDate       = "future_date"
	CodeZeroAmount       = "zero_amount"
	CodeAmountOutOfRange = "amount_out_of_range"
	CodeEmptyDescription = "empty_description"
)

// maxAmount bounds a single transaction's magnitude.
var maxAmount = decimal.NewFromInt(50000)

// futureTolerance allows for exports produced across timezones.
const futureTolerance = 24 * time.Hour

// Check returns every validation failure for one draft. row is the 1-based
// data row number attached to the errors.
func Check(draft model.Draft, now time.Time, row int) []*model.RowError {
	var errs []*model.RowError

	if draft.PostedDate.IsZero() {
		errs = append(errs, validationError(CodeBadDate, row, fmt.Errorf("posted date is not set")))
	} else if draft.PostedDate.After(now.Add(futureTolerance)) {
		errs = append(errs, validationError(CodeFutureDate, row,
			fmt.Errorf("posted date %s is in the future", draft.PostedDate.Format("2006-01-02"))))
	}

	if draft.Amount.IsZero() {
		errs = append(errs, validationError(CodeZeroAmount, row, fmt.Errorf("amount is zero")))
	} else if draft.Amount.Abs().GreaterThan(maxAmount) {
		errs = append(errs, validationError(CodeAmountOutOfRange, row,
			fmt.Errorf("amount %s exceeds limit of %s", draft.Amount, maxAmount)))
	}

	if strings.TrimSpace(draft.Description) == "" {
		errs = append(errs, validationError(CodeEmptyDescription, row, fmt.Errorf("description is empty")))
	}

	return errs
}

func validationError(code string, row int, err error) *model.RowError {
	return &model.RowError{Kind: model.RowErrorValidation, Code: code, Row: row, Err: err}
}
