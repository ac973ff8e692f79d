package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/snapshot"
)

// Store holds the cart lines in memory and mirrors every mutation to
// the snapshot. Lines keep insertion order. Domain-rule violations
// (stock exceeded, quantity below 1, unknown product) never produce
// errors: the operation clamps or silently does nothing.
//
// The snapshot write is best-effort: a failed save is logged and the
// in-memory state stays authoritative for the rest of the run.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine
	snap  snapshot.Store
	log   logrus.FieldLogger
}

// NewStore hydrates the cart from the snapshot. A missing blob means
// an empty cart; a present-but-corrupt blob is returned as an error
// and the caller decides how fatal that is.
func NewStore(ctx context.Context, snap snapshot.Store, log logrus.FieldLogger) (*Store, error) {
	s := &Store{snap: snap, log: log}

	data, err := snap.Load(ctx, snapshot.KeyCart)
	if err != nil {
		if err == snapshot.ErrNotFound {
			return s, nil
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s.lines); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return s, nil
}

// AddLine puts one unit of the product in the cart. A product not yet
// present always gets a line with quantity 1, even at stock 0 (the
// stock ceiling is only checked on repeat adds, matching the catalog
// page which disables the button separately). A product already
// present is incremented by 1 and its stored stock refreshed, unless
// the current quantity already meets the provided stock.
func (s *Store) AddLine(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != p.ID {
			continue
		}
		if s.lines[i].Quantity >= p.Stock {
			return
		}
		s.lines[i].Quantity++
		s.lines[i].Stock = p.Stock
		s.persist(ctx)
		return
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID:   p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Stock:       p.Stock,
		Quantity:    1,
	})
	s.persist(ctx)
}

// RemoveLine deletes the product's line. Removing an absent product is
// a no-op.
func (s *Store) RemoveLine(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity clamps qty into [1, stock] for the line. When even the
// floor cannot be met (stock 0, or qty below 1 with nothing to clamp
// up to), the stored quantity is left alone; dropping to zero is the
// job of RemoveLine, never an implicit side effect.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		clamped := min(qty, s.lines[i].Stock)
		if clamped < 1 {
			return
		}
		s.lines[i].Quantity = clamped
		s.persist(ctx)
		return
	}
}

// SetStock records a fresh stock figure and re-clamps the quantity to
// it. Stock 0 leaves the quantity as-is: the line survives so the cart
// page can show it as unavailable, and purchase affordances are
// disabled by the caller.
func (s *Store) SetStock(ctx context.Context, productID string, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		s.lines[i].Stock = stock
		if stock > 0 && s.lines[i].Quantity > stock {
			s.lines[i].Quantity = stock
		}
		s.persist(ctx)
		return
	}
}

// PatchLine merges the provided fields into the line, leaving nil
// fields untouched. Used to back-fill display copy the line was added
// without.
func (s *Store) PatchLine(ctx context.Context, productID string, patch domain.LinePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if patch.Title != nil {
			s.lines[i].Title = *patch.Title
		}
		if patch.Price != nil {
			s.lines[i].Price = *patch.Price
		}
		if patch.Image != nil {
			s.lines[i].Image = *patch.Image
		}
		if patch.Description != nil {
			s.lines[i].Description = *patch.Description
		}
		s.persist(ctx)
		return
	}
}

// Clear empties the cart unconditionally. Called after a verified
// order.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the derived sum of price x quantity across all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// Count is the total unit count across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

// persist serializes the full line collection to the snapshot. Caller
// holds the lock.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.log.WithError(err).Warn("failed to marshal cart")
		return
	}
	if err := s.snap.Save(ctx, snapshot.KeyCart, data); err != nil {
		s.log.WithError(err).Warn("failed to persist cart")
	}
}
