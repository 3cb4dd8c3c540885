package integration

import (
	"testing"

	"github.com/finvault/ledger/internal/adapter/repository/postgres"
	"github.com/finvault/ledger/internal/usecase"
	"github.com/finvault/ledger/tests/testutil"
	"github.com/rs/zerolog"
)

// stack bundles the full use case layer wired against a test database.
type stack struct {
	db            *testutil.TestDB
	accountUC     *usecase.AccountUseCase
	transactionUC *usecase.TransactionUseCase
	entryUC       *usecase.EntryUseCase
	ledgerUC      *usecase.LedgerUseCase
	outboxRepo    *postgres.OutboxRepository
}

func newStack(t *testing.T) *stack {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	pool := db.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())

	return &stack{
		db:            db,
		accountUC:     usecase.NewAccountUseCase(accountRepo, entryRepo, nil, idGen),
		transactionUC: usecase.NewTransactionUseCase(txManager, accountRepo, transactionRepo, entryRepo, outboxRepo, nil, idGen, retrier),
		entryUC:       usecase.NewEntryUseCase(accountRepo, entryRepo),
		ledgerUC:      usecase.NewLedgerUseCase(ledgerRepo),
		outboxRepo:    outboxRepo,
	}
}
