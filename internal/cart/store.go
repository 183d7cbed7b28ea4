package cart

import (
	"context"
	"sort"
	"sync"
	"time"

	"goldenbites/internal/apperror"
)

// Store keeps one cart per browsing session. Implementations must enforce the
// single-stall invariant: a non-empty cart only accepts entries from the stall
// it is already bound to.
type Store interface {
	AddItem(ctx context.Context, sessionID string, entry Entry) error
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, sessionID string, productID int64) error
	Snapshot(ctx context.Context, sessionID string) (Snapshot, error)
	Clear(ctx context.Context, sessionID string) error
}

// DefaultCartTTL bounds how long an idle session keeps its cart. Session IDs
// arrive as client-supplied cookie values, so without expiry the map grows
// with every visitor that never checks out.
const DefaultCartTTL = 12 * time.Hour

// MemoryStore is the process-local Store. It is a mutex-guarded map with lazy
// expiry, which is enough for a single instance; a shared-cache implementation
// can replace it behind the same interface.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	carts     map[string]*Cart
	touched   map[string]time.Time
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreTTL(DefaultCartTTL)
}

// NewMemoryStoreTTL builds a store whose carts expire after ttl of
// inactivity. A ttl of zero disables expiry.
func NewMemoryStoreTTL(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		carts:   make(map[string]*Cart),
		touched: make(map[string]time.Time),
	}
}

func (s *MemoryStore) AddItem(ctx context.Context, sessionID string, entry Entry) error {
	if entry.Quantity < 1 {
		return apperror.New(apperror.KindValidation, "quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)

	c, ok := s.liveLocked(sessionID, now)
	if !ok {
		c = NewCart()
		s.carts[sessionID] = c
	}
	s.touched[sessionID] = now

	if !c.Empty() && entry.StallID != c.StallID {
		return apperror.New(apperror.KindConflict,
			"your cart contains items from another stall; clear it or complete that order first")
	}

	// Last write wins on quantity and price snapshot.
	c.Entries[entry.ProductID] = entry
	c.StallID = entry.StallID

	return nil
}

func (s *MemoryStore) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)

	c, ok := s.liveLocked(sessionID, now)
	if !ok {
		return apperror.New(apperror.KindNotFound, "item not in cart")
	}
	entry, ok := c.Entries[productID]
	if !ok {
		return apperror.New(apperror.KindNotFound, "item not in cart")
	}
	s.touched[sessionID] = now

	if quantity <= 0 {
		s.removeLocked(c, productID)
		return nil
	}

	entry.Quantity = quantity
	c.Entries[productID] = entry
	return nil
}

func (s *MemoryStore) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)

	c, ok := s.liveLocked(sessionID, now)
	if !ok {
		return apperror.New(apperror.KindNotFound, "item not in cart")
	}
	if _, ok := c.Entries[productID]; !ok {
		return apperror.New(apperror.KindNotFound, "item not in cart")
	}
	s.touched[sessionID] = now

	s.removeLocked(c, productID)
	return nil
}

func (s *MemoryStore) removeLocked(c *Cart, productID int64) {
	delete(c.Entries, productID)
	if c.Empty() {
		c.StallID = 0
	}
}

func (s *MemoryStore) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)

	c, ok := s.liveLocked(sessionID, now)
	if !ok {
		return Snapshot{Entries: []Entry{}}, nil
	}
	s.touched[sessionID] = now

	entries := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ProductID < entries[j].ProductID })

	return Snapshot{
		StallID: c.StallID,
		Entries: entries,
		Total:   ComputeTotal(entries),
	}, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropLocked(sessionID)
	return nil
}

// liveLocked looks up a session's cart, evicting it first if it sat idle past
// the TTL.
func (s *MemoryStore) liveLocked(sessionID string, now time.Time) (*Cart, bool) {
	c, ok := s.carts[sessionID]
	if !ok {
		return nil, false
	}
	if s.expired(sessionID, now) {
		s.dropLocked(sessionID)
		return nil, false
	}
	return c, true
}

func (s *MemoryStore) expired(sessionID string, now time.Time) bool {
	return s.ttl > 0 && now.Sub(s.touched[sessionID]) > s.ttl
}

func (s *MemoryStore) dropLocked(sessionID string) {
	delete(s.carts, sessionID)
	delete(s.touched, sessionID)
}

// sweepLocked evicts every idle cart, not just the one being accessed, so
// abandoned sessions cannot pile up. It runs at most once per TTL window to
// keep the scan off the hot path.
func (s *MemoryStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Before(s.nextSweep) {
		return
	}
	s.nextSweep = now.Add(s.ttl)
	for id := range s.carts {
		if s.expired(id, now) {
			s.dropLocked(id)
		}
	}
}
