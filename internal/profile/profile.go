// Package profile holds the per-institution descriptions of bank export
// formats: how to recognize a file's header and how to translate its rows
// into canonical transaction drafts. Profiles are plain data loaded once at
// startup; there is one generic mapping function parameterized by them.
package profile

import "strings"

// Convention describes how a profile encodes the amount of a row.
type Convention string

const (
	// ConventionSigned is a single signed amount column, optionally with a
	// type column whose debit values force the sign negative.
	ConventionSigned Convention = "signed"
	// ConventionDebitCredit is two unsigned columns, one for debits and one
	// for credits.
	ConventionDebitCredit Convention = "debit_credit"
)

// Profile describes one institution's export format.
type Profile struct {
	Institution string `json:"institution"`
	// Account is the display name of the account rows are imported into.
	Account string `json:"account"`
	// Signature lists the column names that must all be present in the
	// header row for a file to match this profile. Matching is case and
	// whitespace insensitive.
	Signature []string `json:"signature"`

	DateColumn  string   `json:"dateColumn"`
	DateFormats []string `json:"dateFormats"`

	DescriptionColumn string `json:"descriptionColumn"`
	// MemoColumn, when set and distinct from the description, is appended to
	// the description.
	MemoColumn     string `json:"memoColumn"`
	CategoryColumn string `json:"categoryColumn"`

	Convention   Convention `json:"convention"`
	AmountColumn string     `json:"amountColumn"`
	// TypeColumn plus DebitTypes normalize institutions that report debits as
	// positive amounts with a separate transaction-type column.
	TypeColumn   string   `json:"typeColumn"`
	DebitTypes   []string `json:"debitTypes"`
	DebitColumn  string   `json:"debitColumn"`
	CreditColumn string   `json:"creditColumn"`
}

// defaultDateFormats covers the two layouts seen across supported banks.
var defaultDateFormats = []string{"01/02/2006", "2006-01-02"}

func (p *Profile) dateFormats() []string {
	if len(p.DateFormats) > 0 {
		return p.DateFormats
	}
	return defaultDateFormats
}

func (p *Profile) isDebitType(value string) bool {
	value = normalizeColumn(value)
	for _, t := range p.DebitTypes {
		if normalizeColumn(t) == value {
			return true
		}
	}
	return false
}

// normalizeColumn lowercases a header cell and collapses surrounding
// whitespace so signatures tolerate formatting drift between exports.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
