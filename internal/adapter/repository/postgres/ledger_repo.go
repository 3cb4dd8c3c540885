package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements usecase.LedgerRepository with whole-ledger
// audit queries. Both scans are pure reads over immutable entries.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// UnbalancedTransactions returns ids of terminal transactions whose entries
// do not match their type: a completed transfer needs exactly one debit and
// one credit of the transaction amount, a completed deposit exactly one
// credit, a completed withdrawal exactly one debit, and a failed transaction
// no entries at all.
func (r *LedgerRepository) UnbalancedTransactions(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id
		FROM transactions t
		LEFT JOIN entries e ON e.transaction_id = t.id
		WHERE t.status IN ('completed', 'failed')
		GROUP BY t.id, t.type, t.status
		HAVING (t.status = 'failed' AND COUNT(e.id) > 0)
		    OR (t.status = 'completed' AND (
		           COUNT(*) FILTER (WHERE e.amount <> t.amount) > 0
		        OR (t.type = 'transfer' AND (
		               COUNT(*) FILTER (WHERE e.type = 'debit') <> 1
		            OR COUNT(*) FILTER (WHERE e.type = 'credit') <> 1))
		        OR (t.type = 'deposit' AND (
		               COUNT(*) FILTER (WHERE e.type = 'credit') <> 1
		            OR COUNT(*) FILTER (WHERE e.type = 'debit') <> 0))
		        OR (t.type = 'withdrawal' AND (
		               COUNT(*) FILTER (WHERE e.type = 'debit') <> 1
		            OR COUNT(*) FILTER (WHERE e.type = 'credit') <> 0))))
		ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIDs(rows)
}

// OverdrawnAccounts returns ids of accounts whose derived balance is
// negative.
func (r *LedgerRepository) OverdrawnAccounts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id
		FROM entries
		GROUP BY account_id
		HAVING SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END) < 0
		ORDER BY account_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIDs(rows)
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
