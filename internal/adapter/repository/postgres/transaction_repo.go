package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, type, source_account_id, destination_account_id, amount, currency, status, description, created_at`

// Create writes the transaction row inside the given unit of work. The row
// starts pending; UpdateStatus later records the terminal outcome.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, type, source_account_id, destination_account_id, amount, currency, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.ID,
		string(txn.Type),
		txn.SourceAccountID,
		txn.DestinationAccountID,
		decimalToNumeric(txn.Amount),
		txn.Currency,
		string(txn.Status),
		txn.Description,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// UpdateStatus records the pending to terminal transition. The WHERE clause
// on status makes the transition happen at most once even under races.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions
		SET status = $2
		WHERE id = $1 AND status = 'pending'`,
		id, string(status),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotPending
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// ListByAccount lists transactions touching an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0, limit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn     domain.Transaction
		txnType string
		status  string
		amount  pgtype.Numeric
		created time.Time
	)

	if err := row.Scan(
		&txn.ID,
		&txnType,
		&txn.SourceAccountID,
		&txn.DestinationAccountID,
		&amount,
		&txn.Currency,
		&status,
		&txn.Description,
		&created,
	); err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = created

	return &txn, nil
}
