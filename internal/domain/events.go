package domain

import "time"

// Event types
const (
	EventTypeTransactionCompleted = "transaction.completed"
	EventTypeTransactionFailed    = "transaction.failed"
	EventTypeAccountCreated       = "account.created"
	EventTypeAccountStatusChanged = "account.status_changed"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
)

// OutboxEvent represents an event to be published. It is written in the same
// unit of work as the state change it describes.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionEvent is the payload for transaction.completed / transaction.failed.
type TransactionEvent struct {
	TransactionID        string  `json:"transaction_id"`
	Type                 string  `json:"type"`
	SourceAccountID      *string `json:"source_account_id,omitempty"`
	DestinationAccountID *string `json:"destination_account_id,omitempty"`
	Amount               string  `json:"amount"`
	Currency             string  `json:"currency"`
	Status               string  `json:"status"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Currency  string `json:"currency"`
}
