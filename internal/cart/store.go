package cart

import (
	"errors"
	"sync"
	"time"
)

const (
	// SessionTTL is how long an idle cart survives before auto-expiring
	SessionTTL = 24 * time.Hour

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 10 * time.Minute
)

var ErrItemNotFound = errors.New("item not found in cart")

type sessionCart struct {
	items      []Item
	lastActive time.Time
}

// Store holds every active session's cart in memory. It is the only
// writer of cart state; callers always receive detached copies.
type Store struct {
	mu         sync.RWMutex
	carts      map[string]*sessionCart
	expiryHook func(sessionID string)

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewStore() *Store {
	s := &Store{
		carts:       make(map[string]*sessionCart),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

// OnExpire registers fn to be called with each session id the TTL
// cleanup drops, so state keyed by session elsewhere can be dropped
// with it.
func (s *Store) OnExpire(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiryHook = fn
}

func (s *Store) expireSessions() {
	s.mu.Lock()
	cutoff := time.Now().Add(-SessionTTL)
	var expired []string
	for id, sc := range s.carts {
		if sc.lastActive.Before(cutoff) {
			delete(s.carts, id)
			expired = append(expired, id)
		}
	}
	hook := s.expiryHook
	s.mu.Unlock()

	// The hook runs outside the lock; it may call back into the store.
	if hook != nil {
		for _, id := range expired {
			hook(id)
		}
	}
}

// Get returns a copy of the session's cart. A session with no cart yet
// gets an empty one.
func (s *Store) Get(sessionID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.carts[sessionID]
	if !ok {
		return Cart{}
	}
	return snapshot(sc)
}

// AddItem adds a line item to the session's cart. If an item with the
// same product id is already present, the quantities are merged into
// the existing line; a duplicate line is never created.
func (s *Store) AddItem(sessionID string, item Item) Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.AddedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(sessionID)
	for i := range sc.items {
		if sc.items[i].ProductID == item.ProductID {
			sc.items[i].Quantity += item.Quantity
			return snapshot(sc)
		}
	}
	sc.items = append(sc.items, item)
	return snapshot(sc)
}

// UpdateQuantity sets a line item's quantity, clamped to a minimum of 1.
// Removal is a separate operation; this one never drops a line.
func (s *Store) UpdateQuantity(sessionID, productID string, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(sessionID)
	for i := range sc.items {
		if sc.items[i].ProductID == productID {
			sc.items[i].Quantity = quantity
			return snapshot(sc), nil
		}
	}
	return snapshot(sc), ErrItemNotFound
}

// RemoveItem drops a line item from the session's cart.
func (s *Store) RemoveItem(sessionID, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(sessionID)
	for i, item := range sc.items {
		if item.ProductID == productID {
			sc.items = append(sc.items[:i], sc.items[i+1:]...)
			return snapshot(sc), nil
		}
	}
	return snapshot(sc), ErrItemNotFound
}

// Clear empties the session's cart. Clearing an already-empty cart is
// a no-op.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.session(sessionID)
	sc.items = nil
}

// Total returns the session cart's running total.
func (s *Store) Total(sessionID string) float64 {
	return s.Get(sessionID).Total()
}

// Close stops the background cleanup and waits for it to finish
func (s *Store) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}

// session returns the live cart for sessionID, creating it if needed.
// Callers must hold s.mu.
func (s *Store) session(sessionID string) *sessionCart {
	sc, ok := s.carts[sessionID]
	if !ok {
		sc = &sessionCart{}
		s.carts[sessionID] = sc
	}
	sc.lastActive = time.Now()
	return sc
}

func snapshot(sc *sessionCart) Cart {
	items := make([]Item, len(sc.items))
	copy(items, sc.items)
	return Cart{Items: items}
}
