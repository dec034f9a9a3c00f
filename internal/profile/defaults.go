package profile

// Defaults returns the built-in bank profiles. Profiles from configuration
// are tried first; the generic profile stays last because its signature is a
// subset of most bank-specific ones.
func Defaults() []Profile {
	return []Profile{
		{
			Institution:       "pnc",
			Account:           "PNC Checking",
			Signature:         []string{"Date", "Description", "Withdrawals", "Deposits", "Category", "Balance"},
			DateColumn:        "Date",
			DescriptionColumn: "Description",
			CategoryColumn:    "Category",
			Convention:        ConventionDebitCredit,
			DebitColumn:       "Withdrawals",
			CreditColumn:      "Deposits",
		},
		{
			Institution:       "chase",
			Account:           "Chase Card",
			// Memo is deliberately absent from the signature: chase exports
			// with and without it both match, and cell lookup tolerates the
			// missing column.
			Signature:         []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount"},
			DateColumn:        "Transaction Date",
			DescriptionColumn: "Description",
			MemoColumn:        "Memo",
			CategoryColumn:    "Category",
			Convention:        ConventionSigned,
			AmountColumn:      "Amount",
			TypeColumn:        "Type",
			DebitTypes:        []string{"Sale", "Payment"},
		},
		{
			Institution:       "capital_one",
			Account:           "Capital One",
			Signature:         []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"},
			DateColumn:        "Transaction Date",
			DescriptionColumn: "Description",
			CategoryColumn:    "Category",
			Convention:        ConventionDebitCredit,
			DebitColumn:       "Debit",
			CreditColumn:      "Credit",
		},
		{
			Institution:       "generic",
			Account:           "Imported",
			Signature:         []string{"Date", "Description", "Amount"},
			DateColumn:        "Date",
			DescriptionColumn: "Description",
			Convention:        ConventionSigned,
			AmountColumn:      "Amount",
		},
	}
}
