package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are append
// only: this type exposes no update or delete and the table carries a
// trigger rejecting both.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, account_id, transaction_id, type, amount, created_at`

func (r *EntryRepository) db(tx usecase.Transaction) dbtx {
	if tx == nil {
		return r.pool
	}

	return tx.(*Tx).PgxTx()
}

// Create appends entries inside the given unit of work.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error {
	db := r.db(tx)

	for _, entry := range entries {
		_, err := db.Exec(ctx, `
			INSERT INTO entries (id, account_id, transaction_id, type, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID,
			entry.AccountID,
			entry.TransactionID,
			string(entry.Type),
			decimalToNumeric(entry.Amount),
			timeToPgTimestamptz(entry.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// BalanceOf computes sum(credit) - sum(debit) over the account's entries.
// Inside a unit of work that holds the account's row lock this reads every
// entry any earlier writer committed, which is what makes the overdraft
// check race free.
func (r *EntryRepository) BalanceOf(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	var balance pgtype.Numeric

	err := r.db(tx).QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
		FROM entries
		WHERE account_id = $1`, accountID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

// ListByAccount returns the complete entry history of an account, oldest
// first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE account_id = $1
		ORDER BY created_at ASC, id ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListByAccountPage returns one page of an account's entry history, oldest
// first.
func (r *EntryRepository) ListByAccountPage(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE account_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetByTransaction retrieves the entries written by one transaction.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE transaction_id = $1
		ORDER BY created_at ASC, id ASC`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry

	for rows.Next() {
		var (
			entry     domain.Entry
			entryType string
			amount    pgtype.Numeric
			created   time.Time
		)

		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.TransactionID, &entryType, &amount, &created); err != nil {
			return nil, err
		}

		entry.Type = domain.EntryType(entryType)
		entry.Amount = numericToDecimal(amount)
		entry.CreatedAt = created

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
