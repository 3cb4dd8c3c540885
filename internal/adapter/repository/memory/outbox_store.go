package memory

import (
	"context"
	"time"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// OutboxStore implements usecase.OutboxRepository.
type OutboxStore struct {
	s *Store
}

// Create stages an outbox event in the unit of work.
func (r *OutboxStore) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	t := asMemTx(tx)

	cp := *event
	t.stagedEvents = append(t.stagedEvents, &cp)

	return nil
}

// GetUnpublished retrieves committed unpublished events, oldest first.
func (r *OutboxStore) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var events []*domain.OutboxEvent
	for _, event := range r.s.outbox {
		if !event.Published {
			cp := *event
			events = append(events, &cp)
			if len(events) == limit {
				break
			}
		}
	}

	return events, nil
}

// MarkPublished marks an event as published.
func (r *OutboxStore) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, event := range r.s.outbox {
		if event.ID == id {
			event.Published = true
			at := publishedAt
			event.PublishedAt = &at
			return nil
		}
	}

	return nil
}

// DeletePublished removes published events older than the given time.
func (r *OutboxStore) DeletePublished(ctx context.Context, before time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.outbox[:0]
	for _, event := range r.s.outbox {
		if event.Published && event.CreatedAt.Before(before) {
			continue
		}
		kept = append(kept, event)
	}
	r.s.outbox = kept

	return nil
}
