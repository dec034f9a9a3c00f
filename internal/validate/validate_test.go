package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

var now = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func draft(date time.Time, amount string, description string) model.Draft {
	return model.Draft{
		PostedDate:  date,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
}

func codes(errs []*model.RowError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestCheck(t *testing.T) {
	posted := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		draft model.Draft
		want  []string
	}{
		{
			name:  "valid",
			draft: draft(posted, "-4.50", "COFFEE SHOP"),
			want:  nil,
		},
		{
			name:  "zero date",
			draft: draft(time.Time{}, "-4.50", "COFFEE SHOP"),
			want:  []string{CodeBadDate},
		},
		{
			name:  "future date beyond tolerance",
			draft: draft(now.Add(48*time.Hour), "-4.50", "COFFEE SHOP"),
			want:  []string{CodeFutureDate},
		},
		{
			name:  "tomorrow within tolerance",
			draft: draft(now.Add(12*time.Hour), "-4.50", "COFFEE SHOP"),
			want:  nil,
		},
		{
			name:  "zero amount",
			draft: draft(posted, "0", "COFFEE SHOP"),
			want:  []string{CodeZeroAmount},
		},
		{
			name:  "amount over magnitude bound",
			draft: draft(posted, "-50000.01", "WIRE"),
			want:  []string{CodeAmountOutOfRange},
		},
		{
			name:  "amount exactly at bound is fine",
			draft: draft(posted, "50000", "WIRE"),
			want:  nil,
		},
		{
			name:  "blank description",
			draft: draft(posted, "-4.50", "   "),
			want:  []string{CodeEmptyDescription},
		},
		{
			name:  "multiple failures reported separately",
			draft: draft(time.Time{}, "0", ""),
			want:  []string{CodeBadDate, CodeZeroAmount, CodeEmptyDescription},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Check(tt.draft, now, 1)
			assert.Equal(t, tt.want, codes(errs))
		})
	}
}

func TestCheck_ErrorsCarryRowAndKind(t *testing.T) {
	errs := Check(draft(time.Time{}, "-4.50", "X"), now, 7)

	require.Len(t, errs, 1)
	assert.Equal(t, model.RowErrorValidation, errs[0].Kind)
	assert.Equal(t, 7, errs[0].Row)
}
