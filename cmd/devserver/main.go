package main

import (
	"fmt"
	"os"

	"auction-bidder/internal/auth"
	"auction-bidder/internal/config"
	model "auction-bidder/internal/models"
	"auction-bidder/internal/repository"
	"auction-bidder/internal/server"
	handler "auction-bidder/services/devserver/handler"
	"auction-bidder/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Warn("failed to load .env", map[string]any{"error": err.Error()})
	}
	cfg := config.Load()

	repo := repository.NewMemoryRepo()
	prepopulateItems(repo)

	authSvc := auth.NewService(repo, cfg.JWTSecret, cfg.TokenTTL)
	h := handler.NewAuctionHandler(repo, authSvc)
	router := server.SetupRouter(h, authSvc)

	fmt.Printf("Starting dev auction backend on %s...\n", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateItems adds sample items to the in-memory repo
func prepopulateItems(repo *repository.MemoryRepo) {
	items := []model.AuctionItem{
		{ID: "item1", Title: "Vintage pocket watch", Description: "Brass case, working movement", StartingPrice: 100, Status: model.StatusActive},
		{ID: "item2", Title: "Oil painting", Description: "Coastal landscape, framed", StartingPrice: 200, Status: model.StatusActive},
		{ID: "item3", Title: "First edition novel", Description: "Good condition, minor wear", StartingPrice: 150, Status: model.StatusActive},
	}

	for _, item := range items {
		repo.AddItem(item)
	}
}
