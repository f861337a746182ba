package cart

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/Aadcode/greenmile-integration/internal/variant"
)

// RetrieveFunc fetches the caller's current cart from the external store.
type RetrieveFunc func(ctx context.Context) (*domain.Cart, error)

// DeleteItemFunc removes one line item by ID from the external store.
type DeleteItemFunc func(ctx context.Context, itemID string) error

type RemovalStatus string

const (
	RemovalSuccess RemovalStatus = "success"
	RemovalPartial RemovalStatus = "partial"
	RemovalFailed  RemovalStatus = "failed"
)

// ItemOutcome records what happened to one targeted line item.
type ItemOutcome struct {
	ItemID   string `json:"item_id"`
	Title    string `json:"title"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error,omitempty"`
}

// RemovalResult is the tagged outcome of a removal run. Partial means some
// deletions landed before another item exhausted its retries; nothing is
// rolled back, and Items tells the caller exactly which subset to retry.
type RemovalResult struct {
	Status  RemovalStatus `json:"status"`
	IsEmpty bool          `json:"is_empty"`
	Items   []ItemOutcome `json:"items,omitempty"`
}

func (r RemovalResult) Success() bool { return r.Status == RemovalSuccess }

// Mutator removes Greenmile line items from a cart. Deletions run
// concurrently, each with bounded retry and linearly increasing backoff.
type Mutator struct {
	retries int
	backoff time.Duration
	log     *slog.Logger
}

func NewMutator(log *slog.Logger) *Mutator {
	if log == nil {
		log = slog.Default()
	}
	return &Mutator{
		retries: 2, // 3 attempts total per item
		backoff: 300 * time.Millisecond,
		log:     log,
	}
}

// RemoveGreenmileItems deletes every Greenmile line item from the cart
// returned by retrieve. The selection uses the title-prefix convention, the
// same one SourceOf applies to the first item.
func (m *Mutator) RemoveGreenmileItems(ctx context.Context, retrieve RetrieveFunc, deleteItem DeleteItemFunc) RemovalResult {
	c, err := retrieve(ctx)
	if err != nil || c == nil || c.ID == "" || c.Items == nil {
		if err != nil {
			m.log.Error("cart retrieve failed", "err", err)
		}
		return RemovalResult{Status: RemovalFailed, IsEmpty: true}
	}

	var targets []domain.CartItem
	for _, item := range c.Items {
		if variant.HasMarkerPrefix(item.Title) {
			targets = append(targets, item)
		}
	}

	if len(targets) == 0 {
		return RemovalResult{Status: RemovalSuccess, IsEmpty: len(c.Items) == 0}
	}

	outcomes := make([]ItemOutcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range targets {
		g.Go(func() error {
			attempts, errDelete := m.deleteWithRetry(gctx, deleteItem, item.ID)
			outcomes[i] = ItemOutcome{ItemID: item.ID, Title: item.Title, Attempts: attempts}
			if errDelete != nil {
				outcomes[i].Error = errDelete.Error()
			}
			return errDelete
		})
	}

	if errWait := g.Wait(); errWait != nil {
		m.log.Error("greenmile removal aborted", "cart_id", c.ID, "err", errWait)
		status := RemovalFailed
		for _, o := range outcomes {
			if o.Attempts > 0 && o.Error == "" {
				status = RemovalPartial
				break
			}
		}
		return RemovalResult{Status: status, IsEmpty: false, Items: outcomes}
	}

	updated, errRefetch := retrieve(ctx)
	if errRefetch != nil {
		m.log.Error("cart re-fetch after removal failed", "cart_id", c.ID, "err", errRefetch)
		// deletions all succeeded; report that, emptiness unknown
		return RemovalResult{Status: RemovalSuccess, IsEmpty: false, Items: outcomes}
	}

	isEmpty := updated == nil || len(updated.Items) == 0
	return RemovalResult{Status: RemovalSuccess, IsEmpty: isEmpty, Items: outcomes}
}

// deleteWithRetry issues the delete up to retries+1 times, sleeping
// attempt*backoff between tries. The external store may not de-duplicate, so
// a retry after a timed-out-but-applied delete can double-delete; accepted.
func (m *Mutator) deleteWithRetry(ctx context.Context, deleteItem DeleteItemFunc, itemID string) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= m.retries+1; attempt++ {
		lastErr = deleteItem(ctx, itemID)
		if lastErr == nil {
			return attempt, nil
		}
		if attempt > m.retries {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * m.backoff):
		case <-ctx.Done():
			return attempt, ctx.Err()
		}
	}
	return m.retries + 1, lastErr
}
