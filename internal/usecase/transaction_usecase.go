package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/infrastructure/metrics"
)

// TransactionUseCase orchestrates deposits, withdrawals and transfers. Each
// operation runs as one atomic unit of work: lock the affected accounts in
// canonical order, derive balances from the entry history, append a balanced
// set of entries and write the terminal transaction status in a single commit.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	outboxRepo      OutboxRepository
	metrics         *metrics.Metrics
	idGen           IDGenerator
	retrier         Retrier
}

// NewTransactionUseCase creates a new TransactionUseCase. The metrics and
// retrier arguments may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	m *metrics.Metrics,
	idGen IDGenerator,
	retrier Retrier,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		outboxRepo:      outboxRepo,
		metrics:         m,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// WithdrawalInput represents input for a withdrawal.
type WithdrawalInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Currency             string
	Description          string
}

// Deposit credits an account. Money enters the system from outside the
// ledger, so a single credit entry is appended and no balance check is made.
func (uc *TransactionUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if err := validateOperation(input.Amount, input.Currency, input.Description); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	start := time.Now()
	err := uc.run(ctx, func() error {
		var err error
		txn, err = uc.deposit(ctx, input)
		return err
	})
	uc.observe(domain.TransactionTypeDeposit, txn, err, time.Since(start))

	return txn, err
}

func (uc *TransactionUseCase) deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.lockAccount(ctx, tx, input.AccountID, input.Currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	accountID := account.ID

	txn := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		Type:                 domain.TransactionTypeDeposit,
		DestinationAccountID: &accountID,
		Amount:               input.Amount,
		Currency:             account.Currency,
		Status:               domain.TransactionStatusPending,
		Description:          input.Description,
		CreatedAt:            now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	credit := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     account.ID,
		TransactionID: txn.ID,
		Type:          domain.EntryTypeCredit,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.complete(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit unit of work: %w", err)
	}

	return txn, nil
}

// Withdraw debits an account after verifying, under the account's lock, that
// the derived balance covers the amount. On insufficient funds the
// transaction is committed as failed with zero entries and
// domain.ErrInsufficientFunds is returned alongside it.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, input WithdrawalInput) (*domain.Transaction, error) {
	if err := validateOperation(input.Amount, input.Currency, input.Description); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	start := time.Now()
	err := uc.run(ctx, func() error {
		var err error
		txn, err = uc.withdraw(ctx, input)
		return err
	})
	uc.observe(domain.TransactionTypeWithdrawal, txn, err, time.Since(start))

	return txn, err
}

func (uc *TransactionUseCase) withdraw(ctx context.Context, input WithdrawalInput) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.lockAccount(ctx, tx, input.AccountID, input.Currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	accountID := account.ID

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Type:            domain.TransactionTypeWithdrawal,
		SourceAccountID: &accountID,
		Amount:          input.Amount,
		Currency:        account.Currency,
		Status:          domain.TransactionStatusPending,
		Description:     input.Description,
		CreatedAt:       now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	balance, err := uc.entryRepo.BalanceOf(ctx, tx, account.ID)
	if err != nil {
		return nil, err
	}

	// Resulting balance of exactly zero is allowed; only going below it is
	// an overdraft.
	if balance.Sub(input.Amount).IsNegative() {
		return uc.fail(ctx, tx, txn)
	}

	debit := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     account.ID,
		TransactionID: txn.ID,
		Type:          domain.EntryTypeDebit,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.complete(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit unit of work: %w", err)
	}

	return txn, nil
}

// Transfer moves money between two accounts: one debit on the source and one
// credit of the same amount on the destination, written atomically with the
// status transition.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if input.SourceAccountID == input.DestinationAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := validateOperation(input.Amount, input.Currency, input.Description); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	start := time.Now()
	err := uc.run(ctx, func() error {
		var err error
		txn, err = uc.transfer(ctx, input)
		return err
	})
	uc.observe(domain.TransactionTypeTransfer, txn, err, time.Since(start))

	return txn, err
}

func (uc *TransactionUseCase) transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in ascending id order, independent of transfer
	// direction (DEADLOCK PREVENTION).
	ids := []string{input.SourceAccountID, input.DestinationAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var source, destination *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.SourceAccountID:
			source = a
		case input.DestinationAccountID:
			destination = a
		}
	}

	if source == nil || destination == nil {
		return nil, domain.ErrAccountNotFound
	}

	for _, a := range []*domain.Account{source, destination} {
		if err := a.CanOperate(); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
	}

	if source.Currency != destination.Currency {
		return nil, fmt.Errorf("%w: %s vs %s", domain.ErrCurrencyMismatch, source.Currency, destination.Currency)
	}

	if source.Currency != input.Currency {
		return nil, fmt.Errorf("%w: accounts hold %s", domain.ErrCurrencyMismatch, source.Currency)
	}

	now := time.Now().UTC()
	sourceID := source.ID
	destinationID := destination.ID

	txn := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		Type:                 domain.TransactionTypeTransfer,
		SourceAccountID:      &sourceID,
		DestinationAccountID: &destinationID,
		Amount:               input.Amount,
		Currency:             source.Currency,
		Status:               domain.TransactionStatusPending,
		Description:          input.Description,
		CreatedAt:            now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	balance, err := uc.entryRepo.BalanceOf(ctx, tx, source.ID)
	if err != nil {
		return nil, err
	}

	if balance.Sub(input.Amount).IsNegative() {
		return uc.fail(ctx, tx, txn)
	}

	debit := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     source.ID,
		TransactionID: txn.ID,
		Type:          domain.EntryTypeDebit,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	credit := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     destination.ID,
		TransactionID: txn.ID,
		Type:          domain.EntryTypeCredit,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, debit, credit); err != nil {
		return nil, err
	}

	if err := uc.complete(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit unit of work: %w", err)
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists transactions touching an account.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transactionRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// lockAccount locks a single account and verifies it accepts the operation.
func (uc *TransactionUseCase) lockAccount(ctx context.Context, tx Transaction, id, currency string) (*domain.Account, error) {
	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, []string{id})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	account := accounts[0]

	if err := account.CanOperate(); err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}

	if account.Currency != currency {
		return nil, fmt.Errorf("%w: account %s holds %s", domain.ErrCurrencyMismatch, account.ID, account.Currency)
	}

	return account, nil
}

// complete transitions the transaction to completed and records the outbox
// event in the same unit of work.
func (uc *TransactionUseCase) complete(ctx context.Context, tx Transaction, txn *domain.Transaction) error {
	if err := txn.MarkCompleted(); err != nil {
		return err
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, txn.Status); err != nil {
		return err
	}

	return uc.recordEvent(ctx, tx, txn, domain.EventTypeTransactionCompleted)
}

// fail commits the transaction as failed with zero entries and reports the
// overdraft as a business-rule rejection. The failed row is the durable
// record of the rejected attempt.
func (uc *TransactionUseCase) fail(ctx context.Context, tx Transaction, txn *domain.Transaction) (*domain.Transaction, error) {
	if err := txn.MarkFailed(); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, txn.Status); err != nil {
		return nil, err
	}

	if err := uc.recordEvent(ctx, tx, txn, domain.EventTypeTransactionFailed); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit unit of work: %w", err)
	}

	return txn, domain.ErrInsufficientFunds
}

func (uc *TransactionUseCase) recordEvent(ctx context.Context, tx Transaction, txn *domain.Transaction, eventType string) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		Payload: map[string]any{
			"transaction_id": txn.ID,
			"type":           string(txn.Type),
			"amount":         txn.Amount.String(),
			"currency":       txn.Currency,
			"status":         string(txn.Status),
		},
		CreatedAt: time.Now().UTC(),
	}

	return uc.outboxRepo.Create(ctx, tx, event)
}

func (uc *TransactionUseCase) observe(txnType domain.TransactionType, txn *domain.Transaction, err error, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}

	label := string(txnType)
	uc.metrics.TransactionDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	if errors.Is(err, domain.ErrInsufficientFunds) {
		uc.metrics.InsufficientFunds.Inc()
	}

	if txn == nil {
		return
	}

	amount, _ := txn.Amount.Float64()
	uc.metrics.TransactionAmount.WithLabelValues(label).Observe(amount)

	switch txn.Status {
	case domain.TransactionStatusCompleted:
		uc.metrics.TransactionsCompleted.WithLabelValues(label).Inc()
		switch txnType {
		case domain.TransactionTypeDeposit:
			uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryTypeCredit)).Inc()
		case domain.TransactionTypeWithdrawal:
			uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryTypeDebit)).Inc()
		case domain.TransactionTypeTransfer:
			uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryTypeDebit)).Inc()
			uc.metrics.EntriesAppended.WithLabelValues(string(domain.EntryTypeCredit)).Inc()
		}
	case domain.TransactionStatusFailed:
		uc.metrics.TransactionsFailed.WithLabelValues(label).Inc()
	}
}

func (uc *TransactionUseCase) run(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func validateOperation(amount decimal.Decimal, currency, description string) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	if err := domain.ValidateCurrency(currency); err != nil {
		return err
	}

	return domain.ValidateDescription(description)
}
