package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a bank account transactions are imported into. Balance is a
// cached sum of all transactions, maintained by the same commit that inserts
// them.
type Account struct {
	ID          int64
	Name        string
	Institution string
	Balance     decimal.Decimal
	CreatedAt   time.Time
}

// Draft is a canonical transaction parsed from one source row, before it has
// been validated, deduplicated or persisted. Negative amounts are debits.
type Draft struct {
	PostedDate  time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Transaction is a persisted, imported transaction.
type Transaction struct {
	ID          int64
	AccountID   int64
	Account     string
	PostedDate  time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Fingerprint string
	ImportRunID uuid.UUID
}

// Outcome is the terminal result of processing one source file.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomePartial   Outcome = "partially-succeeded"
	OutcomeFailed    Outcome = "failed"
)

// ImportRun is the append-only audit record for one processed file. It is
// created when processing starts and finalized exactly once.
type ImportRun struct {
	ID            uuid.UUID
	SourceFile    string
	Profile       string
	StartedAt     time.Time
	CompletedAt   time.Time
	Outcome       Outcome
	RowsSeen      int
	RowsImported  int
	RowsDuplicate int
	RowsInvalid   int
	// Error holds the file-level failure for a failed run, Warning holds a
	// post-commit problem (archive move) on an otherwise successful one.
	Error   string
	Warning string
}
