package models

import "time"

// Item status values. The backend only ever moves an item from active to
// closed, never back.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// User represents a signed-in bidder as returned by the auction backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AuctionItem is one biddable item. Field names follow the backend wire
// protocol (camelCase). LastBidAmount, LastBidTime and BidderID are present
// together once at least one bid exists; LastBidTime is unix seconds.
type AuctionItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartingPrice float64  `json:"startingPrice"`
	LastBidAmount *float64 `json:"lastBidAmount,omitempty"`
	LastBidTime   *int64   `json:"lastBidTime,omitempty"`
	BidderID      *string  `json:"bidderId,omitempty"`
	Status        string   `json:"status"`
}

// CurrentHighest returns the highest standing value on the item: the last bid
// amount when one exists, otherwise the starting price.
func (i AuctionItem) CurrentHighest() float64 {
	if i.LastBidAmount != nil {
		return *i.LastBidAmount
	}
	return i.StartingPrice
}

// MinimumBid returns the lowest amount the backend will accept for the item.
func (i AuctionItem) MinimumBid() float64 {
	return i.CurrentHighest() + 1
}

// Active reports whether the item still accepts bids.
func (i AuctionItem) Active() bool {
	return i.Status == StatusActive
}

// Bid represents a recorded bid on the dev backend side.
type Bid struct {
	BidID     string    `json:"bidId"`
	ItemID    string    `json:"itemId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
