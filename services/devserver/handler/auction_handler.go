package handler

import (
	"net/http"

	model "auction-bidder/internal/models"
	"auction-bidder/services/devserver/helpers"
	"auction-bidder/utils"

	"github.com/gin-gonic/gin"
)

// AuctionService is the storage surface the handlers consume.
type AuctionService interface {
	ListItems() ([]model.AuctionItem, error)
	RecordBid(itemID, userID string, amount float64) (model.Bid, error)
}

// AuthService issues credentials and registers accounts.
type AuthService interface {
	Register(name, email, password string) (model.User, error)
	Login(email, password string) (string, model.User, error)
}

type AuctionHandler struct {
	auctions AuctionService
	auth     AuthService
}

func NewAuctionHandler(auctions AuctionService, auth AuthService) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, auth: auth}
}

// ListItemsHandler handles GET /api/auctionItems
func (h *AuctionHandler) ListItemsHandler(c *gin.Context) {
	items, err := h.auctions.ListItems()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONMessage(c, status, message)
		utils.Error("ListItemsHandler: failed to list items", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if items == nil {
		items = []model.AuctionItem{}
	}

	utils.JSONItems(c, http.StatusOK, items)
	helpers.LogSuccess("ListItemsHandler", "items listed", map[string]any{
		"count": len(items),
	})
}

// CreateBidHandler handles POST /api/createBid
func (h *AuctionHandler) CreateBidHandler(c *gin.Context) {
	var req helpers.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateBidHandler", err)
		return
	}

	userID := c.GetString("userID")
	bid, err := h.auctions.RecordBid(req.ItemID, userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONMessage(c, status, message)
		utils.Warn("CreateBidHandler: failed to record bid", map[string]any{
			"item_id": req.ItemID,
			"user_id": userID,
			"amount":  req.Amount,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "bid recorded successfully")
	helpers.LogSuccess("CreateBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": userID,
		"amount":  bid.Amount,
	})
}

// LoginHandler handles POST /api/auth/login
func (h *AuctionHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONMessage(c, status, message)
		utils.Warn("LoginHandler: login failed", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, helpers.LoginResponse{Token: token, User: user})
	helpers.LogSuccess("LoginHandler", "login succeeded", map[string]any{
		"user_id": user.ID,
	})
}

// SignupHandler handles POST /api/signup
func (h *AuctionHandler) SignupHandler(c *gin.Context) {
	var req helpers.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignupHandler", err)
		return
	}

	user, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONMessage(c, status, message)
		utils.Warn("SignupHandler: signup failed", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return
	}

	utils.JSONMessage(c, http.StatusCreated, "account created successfully")
	helpers.LogSuccess("SignupHandler", "account created", map[string]any{
		"user_id": user.ID,
	})
}
