package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

type accountRow struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID          int64           `bun:",pk,autoincrement"`
	Name        string          `bun:",unique,notnull"`
	Institution string          `bun:",nullzero"`
	Balance     decimal.Decimal `bun:"type:numeric(14,2),notnull"`
	CreatedAt   time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}

type transactionRow struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID          int64           `bun:",pk,autoincrement"`
	AccountID   int64           `bun:",notnull"`
	PostedDate  time.Time       `bun:"type:date,notnull"`
	Description string          `bun:"type:text,notnull"`
	Amount      decimal.Decimal `bun:"type:numeric(14,2),notnull"`
	Category    string          `bun:",nullzero"`
	Fingerprint string          `bun:",notnull"`
	ImportRunID uuid.UUID       `bun:"type:uuid"`

	AccountName string `bun:"account_name,scanonly"`
}

type importRunRow struct {
	bun.BaseModel `bun:"table:import_runs,alias:r"`

	ID            uuid.UUID `bun:"type:uuid,pk"`
	SourceFile    string    `bun:",notnull"`
	Profile       string    `bun:",nullzero"`
	StartedAt     time.Time `bun:",notnull"`
	CompletedAt   time.Time `bun:",nullzero"`
	Outcome       string    `bun:",nullzero"`
	RowsSeen      int
	RowsImported  int
	RowsDuplicate int
	RowsInvalid   int
	Error         string `bun:"type:text,nullzero"`
	Warning       string `bun:"type:text,nullzero"`
}

func (r *accountRow) toModel() model.Account {
	return model.Account{
		ID:          r.ID,
		Name:        r.Name,
		Institution: r.Institution,
		Balance:     r.Balance,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *transactionRow) toModel() model.Transaction {
	return model.Transaction{
		ID:          r.ID,
		AccountID:   r.AccountID,
		Account:     r.AccountName,
		PostedDate:  r.PostedDate,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Fingerprint: r.Fingerprint,
		ImportRunID: r.ImportRunID,
	}
}

func (r *importRunRow) toModel() model.ImportRun {
	return model.ImportRun{
		ID:            r.ID,
		SourceFile:    r.SourceFile,
		Profile:       r.Profile,
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
		Outcome:       model.Outcome(r.Outcome),
		RowsSeen:      r.RowsSeen,
		RowsImported:  r.RowsImported,
		RowsDuplicate: r.RowsDuplicate,
		RowsInvalid:   r.RowsInvalid,
		Error:         r.Error,
		Warning:       r.Warning,
	}
}

func runToRow(run *model.ImportRun) importRunRow {
	return importRunRow{
		ID:            run.ID,
		SourceFile:    run.SourceFile,
		Profile:       run.Profile,
		StartedAt:     run.StartedAt,
		CompletedAt:   run.CompletedAt,
		Outcome:       string(run.Outcome),
		RowsSeen:      run.RowsSeen,
		RowsImported:  run.RowsImported,
		RowsDuplicate: run.RowsDuplicate,
		RowsInvalid:   run.RowsInvalid,
		Error:         run.Error,
		Warning:       run.Warning,
	}
}
