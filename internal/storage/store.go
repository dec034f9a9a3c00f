// Package storage is the transactional persistence layer over accounts,
// transactions and import runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

// ErrNotFound is returned when a referenced account or transaction does not
// exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Init creates the schema. The unique index on (account_id, fingerprint) is
// the database-level backstop for duplicate detection.
func (s *Store) Init(ctx context.Context) error {
	models := []interface{}{
		(*accountRow)(nil),
		(*transactionRow)(nil),
		(*importRunRow)(nil),
	}

	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", m, err)
		}
	}

	_, err := s.db.NewCreateIndex().
		Model((*transactionRow)(nil)).
		Index("transactions_account_fingerprint_idx").
		Unique().
		IfNotExists().
		Column("account_id", "fingerprint").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating fingerprint index: %w", err)
	}

	return nil
}

func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	row := accountRow{
		Name:        account.Name,
		Institution: account.Institution,
		Balance:     decimal.Zero,
	}

	if _, err := s.db.NewInsert().Model(&row).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("creating account %s: %w", account.Name, err)
	}

	*account = row.toModel()

	return nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	row := accountRow{}
	err := s.db.NewSelect().Model(&row).Where("name = ?", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", name, err)
	}

	account := row.toModel()

	return &account, nil
}

// EnsureAccount returns the named account, creating it when an imported row
// references an account that does not exist yet.
func (s *Store) EnsureAccount(ctx context.Context, name, institution string) (*model.Account, error) {
	account, err := s.GetAccountByName(ctx, name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	row := accountRow{Name: name, Institution: institution, Balance: decimal.Zero}
	_, err = s.db.NewInsert().
		Model(&row).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating account %s: %w", name, err)
	}

	// reselect to cover a concurrent create of the same name
	return s.GetAccountByName(ctx, name)
}

func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var rows []accountRow
	if err := s.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	accounts := make([]model.Account, len(rows))
	for i := range rows {
		accounts[i] = rows[i].toModel()
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, account *model.Account) error {
	res, err := s.db.NewUpdate().
		Model((*accountRow)(nil)).
		Set("name = ?", account.Name).
		Set("institution = ?", account.Institution).
		Where("id = ?", account.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating account %d: %w", account.ID, err)
	}

	return requireAffected(res)
}

// DeleteAccount removes an account and cascades to its transactions.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*transactionRow)(nil)).Where("account_id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("deleting transactions for account %d: %w", id, err)
		}

		res, err := tx.NewDelete().Model((*accountRow)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return fmt.Errorf("deleting account %d: %w", id, err)
		}

		return requireAffected(res)
	})
}

// Fingerprints returns every persisted fingerprint for the account, used to
// seed the duplicate detector before a file is processed.
func (s *Store) Fingerprints(ctx context.Context, accountID int64) ([]string, error) {
	var fps []string
	err := s.db.NewSelect().
		Model((*transactionRow)(nil)).
		Column("fingerprint").
		Where("account_id = ?", accountID).
		Scan(ctx, &fps)
	if err != nil {
		return nil, fmt.Errorf("loading fingerprints for account %d: %w", accountID, err)
	}

	return fps, nil
}

// CommitBatch inserts all of a file's surviving transactions and updates the
// owning account's cached balance in one database transaction. The account
// row is locked first, so concurrent commits against the same account are
// serialized while commits against different accounts proceed in parallel.
// On any failure nothing is applied.
func (s *Store) CommitBatch(ctx context.Context, accountID int64, txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		locked := accountRow{}
		err := tx.NewSelect().
			Model(&locked).
			Where("id = ?", accountID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("locking account %d: %w", accountID, err)
		}

		rows := make([]transactionRow, len(txns))
		delta := decimal.Zero
		for i, txn := range txns {
			rows[i] = transactionRow{
				AccountID:   accountID,
				PostedDate:  txn.PostedDate,
				Description: txn.Description,
				Amount:      txn.Amount,
				Category:    txn.Category,
				Fingerprint: txn.Fingerprint,
				ImportRunID: txn.ImportRunID,
			}
			delta = delta.Add(txn.Amount)
		}

		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("inserting %d transactions: %w", len(rows), err)
		}

		_, err = tx.NewUpdate().
			Model((*accountRow)(nil)).
			Set("balance = balance + ?", delta).
			Where("id = ?", accountID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("updating balance for account %d: %w", accountID, err)
		}

		return nil
	})
	if err != nil {
		return &model.StorageError{Err: err}
	}

	return nil
}

// Filter narrows ListTransactions and the CSV export.
type Filter struct {
	AccountID int64
	From      time.Time
	To        time.Time
	Category  string
}

func (s *Store) ListTransactions(ctx context.Context, filter Filter) ([]model.Transaction, error) {
	var rows []transactionRow

	q := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*").
		ColumnExpr("a.name AS account_name").
		Join("JOIN accounts AS a ON a.id = t.account_id").
		OrderExpr("t.posted_date DESC, t.id DESC")

	if filter.AccountID != 0 {
		q = q.Where("t.account_id = ?", filter.AccountID)
	}
	if !filter.From.IsZero() {
		q = q.Where("t.posted_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("t.posted_date <= ?", filter.To)
	}
	if filter.Category != "" {
		q = q.Where("t.category = ?", filter.Category)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	txns := make([]model.Transaction, len(rows))
	for i := range rows {
		txns[i] = rows[i].toModel()
	}

	return txns, nil
}

// UpdateCategory is the only in-place transaction update.
func (s *Store) UpdateCategory(ctx context.Context, id int64, category string) error {
	res, err := s.db.NewUpdate().
		Model((*transactionRow)(nil)).
		Set("category = ?", category).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating category for transaction %d: %w", id, err)
	}

	return requireAffected(res)
}

// DeleteAllTransactions clears every transaction and resets the cached
// balances in one transaction.
func (s *Store) DeleteAllTransactions(ctx context.Context) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*transactionRow)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("deleting transactions: %w", err)
		}

		_, err := tx.NewUpdate().
			Model((*accountRow)(nil)).
			Set("balance = ?", decimal.Zero).
			Where("TRUE").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("resetting balances: %w", err)
		}

		return nil
	})
}

// InsertRun records the start of processing one file.
func (s *Store) InsertRun(ctx context.Context, run *model.ImportRun) error {
	row := runToRow(run)
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("inserting import run %s: %w", run.ID, err)
	}

	return nil
}

// FinalizeRun writes the outcome and counters of a run exactly once; a run
// that already has a completed_at is left untouched.
func (s *Store) FinalizeRun(ctx context.Context, run *model.ImportRun) error {
	row := runToRow(run)
	res, err := s.db.NewUpdate().
		Model(&row).
		Column("profile", "completed_at", "outcome", "rows_seen", "rows_imported", "rows_duplicate", "rows_invalid", "error", "warning").
		Where("id = ?", run.ID).
		Where("completed_at IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("finalizing import run %s: %w", run.ID, err)
	}

	return requireAffected(res)
}

func (s *Store) ListRuns(ctx context.Context) ([]model.ImportRun, error) {
	var rows []importRunRow
	if err := s.db.NewSelect().Model(&rows).Order("started_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing import runs: %w", err)
	}

	runs := make([]model.ImportRun, len(rows))
	for i := range rows {
		runs[i] = rows[i].toModel()
	}

	return runs, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
