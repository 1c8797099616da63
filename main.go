package main

import (
	"context"
	"os"

	"auction-bidder/internal/backend"
	"auction-bidder/internal/bidding"
	"auction-bidder/internal/bidlock"
	"auction-bidder/internal/config"
	"auction-bidder/internal/console"
	"auction-bidder/internal/scheduler"
	"auction-bidder/internal/session"
	"auction-bidder/internal/store"
	"auction-bidder/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Warn("failed to load .env", map[string]any{"error": err.Error()})
	}
	cfg := config.Load()

	sess := session.NewFileStore(cfg.SessionFile)
	api := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	auctions := store.NewAuctionStore(api, sess)
	locks := bidlock.NewRegistry()
	poller := scheduler.NewPoller(auctions, cfg.PollInterval)

	ui := console.New(auctions, locks, sess, api, os.Stdin, os.Stdout)
	ctrl := bidding.NewController(auctions, locks, sess, api, ui)

	utils.Info("auction bidder starting", map[string]any{
		"backend":       cfg.BackendURL,
		"poll_interval": cfg.PollInterval.String(),
	})

	ui.Run(context.Background(), ctrl, poller)
}
