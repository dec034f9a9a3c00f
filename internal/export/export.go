// Package export renders persisted transactions back out as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

var header = []string{"Date", "Description", "Amount", "Category", "Account"}

// Transactions renders txns as CSV bytes with a header row, in the order
// given.
func Transactions(txns []model.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, txn := range txns {
		record := []string{
			txn.PostedDate.Format("2006-01-02"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Category,
			txn.Account,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}
