package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCartStore tracks delete calls per item and can fail a configurable
// number of times before succeeding.
type mockCartStore struct {
	m           sync.Mutex
	cart        *domain.Cart
	retrieveErr error
	failures    map[string]int // deletes to fail before succeeding; -1 fails forever
	calls       map[string]int
}

func (s *mockCartStore) retrieve(context.Context) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.retrieveErr != nil {
		return nil, s.retrieveErr
	}
	return s.cart, nil
}

func (s *mockCartStore) deleteItem(_ context.Context, itemID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[itemID]++
	remaining := s.failures[itemID]
	if remaining == -1 {
		return errors.New("delete failed")
	}
	if s.calls[itemID] <= remaining {
		return errors.New("delete failed")
	}
	// remove from the cart so the re-fetch sees it gone
	for i, item := range s.cart.Items {
		if item.ID == itemID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *mockCartStore) callCount(itemID string) int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.calls[itemID]
}

func greenmileCart() *domain.Cart {
	return &domain.Cart{ID: "c1", Items: []domain.CartItem{
		{ID: "g1", Title: "Greenmile - Jacket"},
		{ID: "g2", Title: "greenmile - Boots"},
		{ID: "n1", Title: "Plain Jacket"},
	}}
}

func newTestMutator() *Mutator {
	m := NewMutator(nil)
	m.backoff = 0 // no sleeping in tests
	return m
}

func TestRemoveGreenmileItems_RemovesOnlyGreenmile(t *testing.T) {
	store := &mockCartStore{cart: greenmileCart()}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	require.Equal(t, RemovalSuccess, res.Status)
	assert.False(t, res.IsEmpty) // one normal item remains
	assert.Equal(t, 1, store.callCount("g1"))
	assert.Equal(t, 1, store.callCount("g2"))
	assert.Equal(t, 0, store.callCount("n1"))
	require.Len(t, res.Items, 2)
}

func TestRemoveGreenmileItems_EmptyAfterRemoval(t *testing.T) {
	store := &mockCartStore{cart: &domain.Cart{ID: "c1", Items: []domain.CartItem{
		{ID: "g1", Title: "Greenmile - Jacket"},
	}}}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	require.Equal(t, RemovalSuccess, res.Status)
	assert.True(t, res.IsEmpty)
}

func TestRemoveGreenmileItems_NoGreenmileIsNoOp(t *testing.T) {
	store := &mockCartStore{cart: &domain.Cart{ID: "c1", Items: []domain.CartItem{
		{ID: "n1", Title: "Plain Jacket"},
	}}}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	require.Equal(t, RemovalSuccess, res.Status)
	assert.False(t, res.IsEmpty)
	assert.Equal(t, 0, store.callCount("n1"))
	assert.Empty(t, res.Items)
}

func TestRemoveGreenmileItems_EmptyCartIsNoOp(t *testing.T) {
	store := &mockCartStore{cart: &domain.Cart{ID: "c1", Items: []domain.CartItem{}}}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	require.Equal(t, RemovalSuccess, res.Status)
	assert.True(t, res.IsEmpty)
}

func TestRemoveGreenmileItems_InvalidCartFailsFast(t *testing.T) {
	tests := []struct {
		name  string
		store *mockCartStore
	}{
		{"retrieve error", &mockCartStore{retrieveErr: errors.New("boom")}},
		{"nil cart", &mockCartStore{}},
		{"missing id", &mockCartStore{cart: &domain.Cart{Items: []domain.CartItem{}}}},
		{"nil items", &mockCartStore{cart: &domain.Cart{ID: "c1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestMutator().RemoveGreenmileItems(context.Background(), tt.store.retrieve, tt.store.deleteItem)
			assert.Equal(t, RemovalFailed, res.Status)
			assert.True(t, res.IsEmpty)
		})
	}
}

func TestRemoveGreenmileItems_RetriesThenSucceeds(t *testing.T) {
	store := &mockCartStore{
		cart:     greenmileCart(),
		failures: map[string]int{"g1": 2}, // succeeds on the 3rd attempt
	}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	require.Equal(t, RemovalSuccess, res.Status)
	assert.Equal(t, 3, store.callCount("g1"))
	assert.Equal(t, 1, store.callCount("g2"))
}

func TestRemoveGreenmileItems_RetryExhaustionAborts(t *testing.T) {
	store := &mockCartStore{
		cart:     greenmileCart(),
		failures: map[string]int{"g1": -1},
	}

	res := newTestMutator().RemoveGreenmileItems(context.Background(), store.retrieve, store.deleteItem)

	// g2 was dispatched concurrently and succeeded; partial mutation stands
	require.Equal(t, RemovalPartial, res.Status)
	assert.False(t, res.IsEmpty)
	assert.Equal(t, 3, store.callCount("g1")) // 1 attempt + 2 retries

	var failed []string
	for _, o := range res.Items {
		if o.Error != "" {
			failed = append(failed, o.ItemID)
		}
	}
	assert.Contains(t, failed, "g1")
}
