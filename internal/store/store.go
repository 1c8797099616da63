package store

import (
	"context"
	"fmt"
	"sync"

	"auction-bidder/internal/auctionerrors"
	"auction-bidder/internal/backend"
	"auction-bidder/internal/models"
	"auction-bidder/internal/session"
)

// AuctionStore holds the most recently fetched item snapshot. A refresh either
// replaces the snapshot wholesale or leaves it untouched; there is no
// incremental merge. Consumers get copies, never references into the snapshot.
type AuctionStore struct {
	api     backend.API
	session session.Accessor

	mu      sync.RWMutex
	items   []models.AuctionItem
	loading bool
	lastErr error
}

// NewAuctionStore creates an empty store backed by the given API and session.
func NewAuctionStore(api backend.API, sess session.Accessor) *AuctionStore {
	return &AuctionStore{
		api:     api,
		session: sess,
	}
}

// Refresh fetches the full item collection and replaces the snapshot on
// success. On any failure the snapshot is unchanged. The loading flag is set
// for the duration of the call on every exit path.
func (s *AuctionStore) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, ok := s.session.Credential()
	if !ok {
		err := fmt.Errorf("store: refresh aborted: %w", auctionerrors.ErrAuthMissing)
		s.setError(err)
		return err
	}

	items, err := s.api.FetchItems(ctx, token)
	if err != nil {
		err = fmt.Errorf("store: refresh failed: %w", err)
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.items = items
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the current snapshot in server order.
func (s *AuctionStore) Items() []models.AuctionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuctionItem(nil), s.items...)
}

// Item returns the snapshot entry for the given id.
func (s *AuctionStore) Item(itemID string) (models.AuctionItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.AuctionItem{}, false
}

// Loading reports whether a refresh is currently in flight.
func (s *AuctionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the error from the most recent refresh, or nil if it
// succeeded.
func (s *AuctionStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *AuctionStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *AuctionStore) setError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
