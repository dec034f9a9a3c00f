package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

func builtin(t *testing.T, institution string) *Profile {
	t.Helper()
	for _, p := range Defaults() {
		if p.Institution == institution {
			return &p
		}
	}
	t.Fatalf("no builtin profile %q", institution)
	return nil
}

func TestMapRow_PNCWithdrawalIsNegative(t *testing.T) {
	p := builtin(t, "pnc")
	header := []string{"Date", "Description", "Withdrawals", "Deposits", "Category", "Balance"}
	index := HeaderIndex(header)

	draft, rerr := MapRow(p, index, []string{"01/05/2024", "COFFEE SHOP", "$4.50", "", "Dining", "$1,200.00"}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "-4.50", draft.Amount.StringFixed(2))
	assert.Equal(t, "COFFEE SHOP", draft.Description)
	assert.Equal(t, "Dining", draft.Category)
	assert.Equal(t, "2024-01-05", draft.PostedDate.Format("2006-01-02"))
}

func TestMapRow_PNCDepositIsPositive(t *testing.T) {
	p := builtin(t, "pnc")
	index := HeaderIndex([]string{"Date", "Description", "Withdrawals", "Deposits", "Category", "Balance"})

	draft, rerr := MapRow(p, index, []string{"2024-01-10", "PAYROLL", "", "2,500.00", "", "3,700.00"}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "2500.00", draft.Amount.StringFixed(2))
}

func TestMapRow_ChaseSaleReportedPositiveBecomesDebit(t *testing.T) {
	p := builtin(t, "chase")
	header := []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}
	index := HeaderIndex(header)

	draft, rerr := MapRow(p, index, []string{"01/03/2024", "01/04/2024", "GROCERY", "Food", "Sale", "32.17", ""}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "-32.17", draft.Amount.StringFixed(2))
}

func TestMapRow_ChaseNonDebitTypeKeepsSign(t *testing.T) {
	p := builtin(t, "chase")
	header := []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}
	index := HeaderIndex(header)

	draft, rerr := MapRow(p, index, []string{"01/03/2024", "01/04/2024", "REFUND", "Food", "Return", "12.00", ""}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "12.00", draft.Amount.StringFixed(2))
}

func TestMapRow_ChaseMemoAppended(t *testing.T) {
	p := builtin(t, "chase")
	header := []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}
	index := HeaderIndex(header)

	draft, rerr := MapRow(p, index, []string{"01/03/2024", "01/04/2024", "AIRLINE", "Travel", "Sale", "412.00", "TICKET 0041"}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "AIRLINE - TICKET 0041", draft.Description)

	// identical memo is not repeated
	draft, rerr = MapRow(p, index, []string{"01/03/2024", "01/04/2024", "AIRLINE", "Travel", "Sale", "412.00", "AIRLINE"}, 2)
	require.Nil(t, rerr)
	assert.Equal(t, "AIRLINE", draft.Description)
}

func TestMapRow_ChaseWithoutMemoColumn(t *testing.T) {
	p := builtin(t, "chase")
	header := []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount"}
	index := HeaderIndex(header)

	require.Equal(t, p, Detect(header, Defaults()))

	draft, rerr := MapRow(p, index, []string{"01/03/2024", "01/04/2024", "GROCERY", "Food", "Sale", "32.17"}, 1)

	require.Nil(t, rerr)
	assert.Equal(t, "-32.17", draft.Amount.StringFixed(2))
	assert.Equal(t, "GROCERY", draft.Description)
}

func TestMapRow_CapitalOneDebitCredit(t *testing.T) {
	p := builtin(t, "capital_one")
	header := []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"}
	index := HeaderIndex(header)

	draft, rerr := MapRow(p, index, []string{"2024-02-01", "2024-02-02", "1234", "STREAMING", "Media", "15.99", ""}, 1)
	require.Nil(t, rerr)
	assert.Equal(t, "-15.99", draft.Amount.StringFixed(2))

	draft, rerr = MapRow(p, index, []string{"2024-02-03", "2024-02-04", "1234", "CREDIT", "", "", "50.00"}, 2)
	require.Nil(t, rerr)
	assert.Equal(t, "50.00", draft.Amount.StringFixed(2))
}

func TestMapRow_BothDateFormats(t *testing.T) {
	p := builtin(t, "generic")
	index := HeaderIndex([]string{"Date", "Description", "Amount"})

	for _, date := range []string{"01/05/2024", "2024-01-05"} {
		draft, rerr := MapRow(p, index, []string{date, "COFFEE", "-4.50"}, 1)
		require.Nil(t, rerr)
		assert.Equal(t, "2024-01-05", draft.PostedDate.Format("2006-01-02"))
	}
}

func TestMapRow_UnparseableDate(t *testing.T) {
	p := builtin(t, "generic")
	index := HeaderIndex([]string{"Date", "Description", "Amount"})

	_, rerr := MapRow(p, index, []string{"NOTADATE", "COFFEE", "-4.50"}, 3)

	require.NotNil(t, rerr)
	assert.Equal(t, model.RowErrorMapping, rerr.Kind)
	assert.Equal(t, CodeBadDate, rerr.Code)
	assert.Equal(t, 3, rerr.Row)
}

func TestMapRow_UnparseableAmount(t *testing.T) {
	p := builtin(t, "generic")
	index := HeaderIndex([]string{"Date", "Description", "Amount"})

	_, rerr := MapRow(p, index, []string{"2024-01-05", "COFFEE", "four fifty"}, 2)

	require.NotNil(t, rerr)
	assert.Equal(t, CodeBadAmount, rerr.Code)
}

func TestMapRow_ShortRecordMissingColumn(t *testing.T) {
	p := builtin(t, "generic")
	index := HeaderIndex([]string{"Date", "Description", "Amount"})

	_, rerr := MapRow(p, index, []string{"2024-01-05"}, 1)

	require.NotNil(t, rerr)
	assert.Equal(t, CodeMissingColumn, rerr.Code)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"-4.50", "-4.50"},
		{" 12.00 ", "12.00"},
		{"", "0.00"},
	}

	for _, tt := range tests {
		amount, err := parseMoney(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, amount.StringFixed(2), tt.raw)
	}

	_, err := parseMoney("abc")
	assert.Error(t, err)
}
