package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

// Mapping error codes.
const (
	CodeMissingColumn = "missing_column"
	CodeBadDate       = "bad_date"
	CodeBadAmount     = "bad_amount"
)

// MapRow translates one raw row into a canonical draft using the profile's
// column bindings. Mapping is pure and stateless per row; a failure affects
// only that row. row is the 1-based data row number used in error reports.
func MapRow(p *Profile, index map[string]int, record []string, row int) (model.Draft, *model.RowError) {
	dateRaw, ok := cell(index, record, p.DateColumn)
	if !ok {
		return model.Draft{}, mappingError(CodeMissingColumn, row, fmt.Errorf("column %q not in row", p.DateColumn))
	}

	date, err := parseDate(dateRaw, p.dateFormats())
	if err != nil {
		return model.Draft{}, mappingError(CodeBadDate, row, err)
	}

	amount, rerr := mapAmount(p, index, record, row)
	if rerr != nil {
		return model.Draft{}, rerr
	}

	desc, _ := cell(index, record, p.DescriptionColumn)
	desc = strings.TrimSpace(desc)
	if memo, ok := cell(index, record, p.MemoColumn); ok {
		memo = strings.TrimSpace(memo)
		if memo != "" && memo != desc {
			desc = desc + " - " + memo
		}
	}

	category, _ := cell(index, record, p.CategoryColumn)

	return model.Draft{
		PostedDate:  date,
		Description: desc,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
	}, nil
}

func mapAmount(p *Profile, index map[string]int, record []string, row int) (decimal.Decimal, *model.RowError) {
	switch p.Convention {
	case ConventionDebitCredit:
		debit, err := parseMoney(cellOrEmpty(index, record, p.DebitColumn))
		if err != nil {
			return decimal.Zero, mappingError(CodeBadAmount, row, fmt.Errorf("column %q: %w", p.DebitColumn, err))
		}
		if !debit.IsZero() {
			return debit.Abs().Neg(), nil
		}

		credit, err := parseMoney(cellOrEmpty(index, record, p.CreditColumn))
		if err != nil {
			return decimal.Zero, mappingError(CodeBadAmount, row, fmt.Errorf("column %q: %w", p.CreditColumn, err))
		}

		return credit.Abs(), nil

	default: // ConventionSigned
		raw, ok := cell(index, record, p.AmountColumn)
		if !ok {
			return decimal.Zero, mappingError(CodeMissingColumn, row, fmt.Errorf("column %q not in row", p.AmountColumn))
		}

		amount, err := parseMoney(raw)
		if err != nil {
			return decimal.Zero, mappingError(CodeBadAmount, row, fmt.Errorf("column %q: %w", p.AmountColumn, err))
		}

		if p.TypeColumn != "" {
			if typ, ok := cell(index, record, p.TypeColumn); ok && p.isDebitType(typ) {
				amount = amount.Abs().Neg()
			}
		}

		return amount, nil
	}
}

// parseMoney parses a currency cell, tolerating dollar signs, thousands
// separators and surrounding whitespace. An empty cell is zero.
func parseMoney(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}

	return amount, nil
}

func parseDate(raw string, formats []string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			// Calendar date only, no time component.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q", raw)
}

func cell(index map[string]int, record []string, column string) (string, bool) {
	if column == "" {
		return "", false
	}

	i, ok := index[normalizeColumn(column)]
	if !ok || i >= len(record) {
		return "", false
	}

	return record[i], true
}

func cellOrEmpty(index map[string]int, record []string, column string) string {
	v, _ := cell(index, record, column)
	return v
}

func mappingError(code string, row int, err error) *model.RowError {
	return &model.RowError{Kind: model.RowErrorMapping, Code: code, Row: row, Err: err}
}
