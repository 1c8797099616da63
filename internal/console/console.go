package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"auction-bidder/internal/backend"
	"auction-bidder/internal/bidding"
	"auction-bidder/internal/bidlock"
	"auction-bidder/internal/models"
	"auction-bidder/internal/scheduler"
	"auction-bidder/internal/session"
	"auction-bidder/internal/store"
)

// UI is a minimal console presentation adapter. It renders store snapshots,
// supplies raw bid-amount input on request and reports submission outcomes.
// All auction logic lives behind it.
type UI struct {
	store   *store.AuctionStore
	locks   *bidlock.Registry
	session session.Accessor
	api     backend.API

	in  *bufio.Scanner
	out io.Writer
}

// New creates a console UI reading commands from in and writing to out.
func New(st *store.AuctionStore, locks *bidlock.Registry, sess session.Accessor, api backend.API, in io.Reader, out io.Writer) *UI {
	return &UI{
		store:   st,
		locks:   locks,
		session: sess,
		api:     api,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// PromptAmount asks the user for a bid amount. A blank line cancels.
func (u *UI) PromptAmount(item models.AuctionItem, minimum float64) (string, bool) {
	fmt.Fprintf(u.out, "Enter your bid for %q (current highest: %.2f, minimum: %.2f), blank to cancel: ",
		item.Title, item.CurrentHighest(), minimum)
	if !u.in.Scan() {
		return "", false
	}
	raw := strings.TrimSpace(u.in.Text())
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Run drives the command loop until quit or EOF.
func (u *UI) Run(ctx context.Context, ctrl *bidding.Controller, poller *scheduler.Poller) {
	defer poller.Stop()

	if user, ok := u.session.User(); ok {
		fmt.Fprintf(u.out, "Signed in as %s\n", user.Name)
		poller.Start(ctx)
	} else {
		fmt.Fprintln(u.out, "Not signed in. Use: login <email> <password>")
	}
	fmt.Fprintln(u.out, "Commands: list, bid <item-id>, refresh, login, signup, logout, quit")

	for {
		fmt.Fprint(u.out, "> ")
		if !u.in.Scan() {
			return
		}
		fields := strings.Fields(u.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			u.renderItems()
		case "refresh":
			if err := u.store.Refresh(ctx); err != nil {
				fmt.Fprintf(u.out, "refresh failed: %v\n", err)
				continue
			}
			u.renderItems()
		case "bid":
			if len(fields) != 2 {
				fmt.Fprintln(u.out, "usage: bid <item-id>")
				continue
			}
			u.submit(ctx, ctrl, fields[1])
		case "login":
			if len(fields) != 3 {
				fmt.Fprintln(u.out, "usage: login <email> <password>")
				continue
			}
			u.login(ctx, poller, fields[1], fields[2])
		case "signup":
			if len(fields) != 4 {
				fmt.Fprintln(u.out, "usage: signup <name> <email> <password>")
				continue
			}
			if err := u.api.Signup(ctx, fields[1], fields[2], fields[3]); err != nil {
				fmt.Fprintf(u.out, "signup failed: %v\n", err)
				continue
			}
			fmt.Fprintln(u.out, "account created, you can log in now")
		case "logout":
			poller.Stop()
			if err := u.session.Clear(); err != nil {
				fmt.Fprintf(u.out, "logout failed: %v\n", err)
				continue
			}
			fmt.Fprintln(u.out, "signed out")
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(u.out, "unknown command %q\n", fields[0])
		}
	}
}

func (u *UI) login(ctx context.Context, poller *scheduler.Poller, email, password string) {
	token, user, err := u.api.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(u.out, "login failed: %v\n", err)
		return
	}
	if err := u.session.SetSession(token, user); err != nil {
		fmt.Fprintf(u.out, "failed to persist session: %v\n", err)
		return
	}
	fmt.Fprintf(u.out, "signed in as %s\n", user.Name)
	poller.Start(ctx)
}

func (u *UI) submit(ctx context.Context, ctrl *bidding.Controller, itemID string) {
	outcome, err := ctrl.RequestBid(ctx, itemID)
	if err != nil {
		fmt.Fprintf(u.out, "bid not submitted: %v\n", err)
		return
	}

	switch outcome.Kind {
	case bidding.OutcomeAccepted:
		fmt.Fprintf(u.out, "Bid placed successfully! Your bid: %.2f\n", outcome.Amount)
	case bidding.OutcomeRejected:
		fmt.Fprintf(u.out, "Bid rejected: %s\n", outcome.Message)
	case bidding.OutcomeSkipped:
		// Duplicate request or cancelled prompt; nothing to report.
	}
}

func (u *UI) renderItems() {
	if u.store.Loading() {
		fmt.Fprintln(u.out, "Loading auction items...")
	}
	if err := u.store.LastError(); err != nil {
		fmt.Fprintf(u.out, "last refresh failed: %v\n", err)
	}

	items := u.store.Items()
	if len(items) == 0 {
		fmt.Fprintln(u.out, "No auction items available at the moment.")
		return
	}

	for _, item := range items {
		fmt.Fprintf(u.out, "\n[%s] %s (%s)\n", item.ID, item.Title, strings.ToUpper(item.Status))
		fmt.Fprintf(u.out, "  %s\n", item.Description)
		fmt.Fprintf(u.out, "  Starting price: %.2f\n", item.StartingPrice)
		if item.LastBidAmount != nil {
			fmt.Fprintf(u.out, "  Current highest bid: %.2f\n", *item.LastBidAmount)
			if item.LastBidTime != nil {
				fmt.Fprintf(u.out, "  Last bid time: %s\n", time.Unix(*item.LastBidTime, 0).Local().Format(time.RFC822))
			}
			if item.BidderID != nil {
				fmt.Fprintf(u.out, "  Bidder: %s\n", *item.BidderID)
			}
		} else {
			fmt.Fprintln(u.out, "  No bids yet - start bidding!")
		}
		if u.locks.Locked(item.ID) {
			fmt.Fprintln(u.out, "  (bid submission in progress)")
		}
	}
	fmt.Fprintln(u.out)
}
