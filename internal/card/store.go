// Package card provides the in-memory store for shareable policy cards.
// Cards live for the process lifetime only; there is no persistence.
package card

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/policy-card/internal/summary"
)

// ErrNotFound is returned when a card ID has no entry.
var ErrNotFound = fmt.Errorf("card not found")

// Stored is a saved card with its share metadata.
type Stored struct {
	ID        uuid.UUID           `json:"id"`
	Domain    string              `json:"domain"`
	Card      *summary.PolicyCard `json:"card"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Store holds shareable cards keyed by UUID.
type Store struct {
	mu    sync.RWMutex
	cards map[uuid.UUID]*Stored
}

// NewStore creates an empty card store.
func NewStore() *Store {
	return &Store{
		cards: make(map[uuid.UUID]*Stored),
	}
}

// Save stores a card and returns its share record.
func (s *Store) Save(domain string, c *summary.PolicyCard) *Stored {
	stored := &Stored{
		ID:        uuid.New(),
		Domain:    domain,
		Card:      c,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.cards[stored.ID] = stored
	s.mu.Unlock()

	return stored
}

// Get returns the card for id, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Stored, error) {
	s.mu.RLock()
	stored, ok := s.cards[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return stored, nil
}

// Len returns the number of stored cards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
