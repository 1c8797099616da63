package repository

import (
	"fmt"
	"sync"
	"time"

	"auction-bidder/internal/auctionerrors"
	model "auction-bidder/internal/models"
	"auction-bidder/utils"
)

// AuctionDB defines the storage interface for the dev auction backend.
type AuctionDB interface {
	ListItems() ([]model.AuctionItem, error)
	RecordBid(itemID, userID string, amount float64) (model.Bid, error)
	CreateUser(name, email, passwordHash string) (model.User, error)
	GetUserByEmail(email string) (model.User, string, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
type MemoryRepo struct {
	mu        sync.RWMutex
	items     map[string]model.AuctionItem // key: itemID
	itemOrder []string                     // listing order, stable across bids
	bids      map[string][]model.Bid       // key: itemID -> bids in arrival order
	users     map[string]model.User        // key: email
	passwords map[string]string            // key: email -> bcrypt hash
}

// NewMemoryRepo creates a new in-memory repository instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:     make(map[string]model.AuctionItem),
		bids:      make(map[string][]model.Bid),
		users:     make(map[string]model.User),
		passwords: make(map[string]string),
	}
}

// ListItems returns all items in insertion order.
func (r *MemoryRepo) ListItems() ([]model.AuctionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.AuctionItem, 0, len(r.itemOrder))
	for _, id := range r.itemOrder {
		items = append(items, r.items[id])
	}
	return items, nil
}

// RecordBid validates and records a bid, updating the item's last-bid state.
// The highest bid is monotonic: a bid below currentHighest+1 is refused, so
// lastBidAmount only ever increases.
func (r *MemoryRepo) RecordBid(itemID, userID string, amount float64) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Bid{}, fmt.Errorf("record bid for item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	if !item.Active() {
		return model.Bid{}, fmt.Errorf("record bid for item %s: %w", itemID, auctionerrors.ErrAuctionClosed)
	}
	if minimum := item.MinimumBid(); amount < minimum {
		return model.Bid{}, fmt.Errorf("record bid for item %s: %w - minimum bid is %.2f", itemID, auctionerrors.ErrBidTooLow, minimum)
	}

	now := time.Now().UTC()
	bid := model.Bid{
		BidID:     utils.GenerateID(),
		ItemID:    itemID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now,
	}
	r.bids[itemID] = append(r.bids[itemID], bid)

	bidTime := now.Unix()
	item.LastBidAmount = &amount
	item.LastBidTime = &bidTime
	item.BidderID = &userID
	r.items[itemID] = item

	return bid, nil
}

// CreateUser registers a new user keyed by email.
func (r *MemoryRepo) CreateUser(name, email, passwordHash string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[email]; ok {
		return model.User{}, fmt.Errorf("create user %s: %w", email, auctionerrors.ErrEmailTaken)
	}

	user := model.User{
		ID:    utils.GenerateID(),
		Name:  name,
		Email: email,
	}
	r.users[email] = user
	r.passwords[email] = passwordHash
	return user, nil
}

// GetUserByEmail returns the user record and stored password hash.
func (r *MemoryRepo) GetUserByEmail(email string) (model.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return model.User{}, "", fmt.Errorf("get user %s: %w", email, auctionerrors.ErrBadCredentials)
	}
	return user, r.passwords[email], nil
}

// AddItem seeds an item. New items start without bid history.
func (r *MemoryRepo) AddItem(item model.AuctionItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.itemOrder = append(r.itemOrder, item.ID)
	}
	r.items[item.ID] = item
}

// CloseItem moves an item to closed. The transition is one-way; closing an
// already closed item is a no-op.
func (r *MemoryRepo) CloseItem(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return
	}
	item.Status = model.StatusClosed
	r.items[itemID] = item
}
