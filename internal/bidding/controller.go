package bidding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"auction-bidder/internal/auctionerrors"
	"auction-bidder/internal/models"
	"auction-bidder/internal/session"
	"auction-bidder/utils"
)

// ItemSource is the store surface the controller reads items from and
// reconciles against after a settled bid.
type ItemSource interface {
	Item(itemID string) (models.AuctionItem, bool)
	Refresh(ctx context.Context) error
}

// Locker is the per-item exclusivity gate.
type Locker interface {
	Acquire(itemID string) bool
	Release(itemID string)
}

// Dispatcher sends a validated bid to the auction backend.
type Dispatcher interface {
	CreateBid(ctx context.Context, token, itemID string, amount float64) error
}

// AmountPrompter supplies the raw bid amount for an item on request. The
// second return value is false when the user cancelled the prompt.
type AmountPrompter interface {
	PromptAmount(item models.AuctionItem, minimum float64) (string, bool)
}

// OutcomeKind classifies how a submission settled.
type OutcomeKind string

const (
	// OutcomeAccepted means the backend accepted the bid. Amount is the
	// amount this client submitted, not necessarily the authoritative
	// highest bid after reconciliation.
	OutcomeAccepted OutcomeKind = "accepted"
	// OutcomeRejected means the backend or transport refused the bid.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeSkipped means the submission never started: a duplicate
	// request while one was in flight, or a cancelled prompt.
	OutcomeSkipped OutcomeKind = "skipped"
)

// Outcome is the terminal report of one submission attempt.
type Outcome struct {
	Kind    OutcomeKind
	ItemID  string
	Amount  float64
	Message string
}

// Controller validates, locks, submits, reconciles and unlocks. It is the
// only writer of the lock registry.
type Controller struct {
	store    ItemSource
	locks    Locker
	session  session.Accessor
	api      Dispatcher
	prompter AmountPrompter
}

// NewController creates a bid submission controller. prompter may be nil when
// callers always supply the raw amount through SubmitBid directly.
func NewController(store ItemSource, locks Locker, sess session.Accessor, api Dispatcher, prompter AmountPrompter) *Controller {
	return &Controller{
		store:    store,
		locks:    locks,
		session:  sess,
		api:      api,
		prompter: prompter,
	}
}

// RequestBid resolves the item, asks the presentation adapter for an amount
// and submits it. A cancelled prompt settles as OutcomeSkipped.
func (c *Controller) RequestBid(ctx context.Context, itemID string) (Outcome, error) {
	item, ok := c.store.Item(itemID)
	if !ok {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}

	raw, ok := c.prompter.PromptAmount(item, item.MinimumBid())
	if !ok {
		return Outcome{Kind: OutcomeSkipped, ItemID: itemID}, nil
	}
	return c.SubmitBid(ctx, itemID, raw)
}

// SubmitBid runs one submission attempt for the item with the given raw
// amount input. Validation failures return a taxonomy error and never reach
// the network; backend and transport refusals settle as OutcomeRejected, not
// as errors. A submission already in flight for the item settles silently as
// OutcomeSkipped. The lock is released on every path past acquisition.
func (c *Controller) SubmitBid(ctx context.Context, itemID, rawAmount string) (Outcome, error) {
	item, ok := c.store.Item(itemID)
	if !ok {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	if !item.Active() {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w", itemID, auctionerrors.ErrAuctionClosed)
	}

	if !c.locks.Acquire(itemID) {
		// A submission is already in flight; rapid duplicate requests
		// are dropped, not reported as errors.
		return Outcome{Kind: OutcomeSkipped, ItemID: itemID}, nil
	}
	defer c.locks.Release(itemID)

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w", itemID, err)
	}

	if minimum := item.MinimumBid(); amount < minimum {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w - minimum bid is %.2f", itemID, auctionerrors.ErrBidTooLow, minimum)
	}

	token, ok := c.session.Credential()
	if !ok {
		return Outcome{}, fmt.Errorf("bidding: item %s: %w", itemID, auctionerrors.ErrAuthMissing)
	}

	if err := c.api.CreateBid(ctx, token, itemID, amount); err != nil {
		return c.rejected(itemID, amount, err), nil
	}

	// Reconcile before reporting: only the backend's next response is
	// authoritative, a competing higher bid may already have landed.
	if err := c.store.Refresh(ctx); err != nil {
		utils.Warn("bidding: refresh after accepted bid failed", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
	}

	utils.Info("bidding: bid accepted", map[string]any{
		"item_id": itemID,
		"amount":  amount,
	})
	return Outcome{Kind: OutcomeAccepted, ItemID: itemID, Amount: amount}, nil
}

// rejected turns a dispatch failure into the rejection report shown to the
// presentation adapter.
func (c *Controller) rejected(itemID string, amount float64, err error) Outcome {
	message := "Bid failed"
	var srvErr *auctionerrors.ServerError
	switch {
	case errors.Is(err, auctionerrors.ErrNetworkUnavailable):
		message = "network error"
	case errors.Is(err, auctionerrors.ErrAuthExpired):
		message = "session expired, please log in again"
	case errors.As(err, &srvErr) && srvErr.Message != "":
		message = srvErr.Message
	}

	utils.Warn("bidding: bid rejected", map[string]any{
		"item_id": itemID,
		"amount":  amount,
		"error":   err.Error(),
	})
	return Outcome{Kind: OutcomeRejected, ItemID: itemID, Amount: amount, Message: message}
}

// parseAmount turns the raw presentation-layer input into a numeric amount.
func parseAmount(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w - empty input", auctionerrors.ErrInvalidAmount)
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w - not a number: %q", auctionerrors.ErrInvalidAmount, trimmed)
	}
	return amount, nil
}
