package server

import (
	handler "auction-bidder/services/devserver/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the dev auction backend
func SetupRouter(h *handler.AuctionHandler, parser TokenParser) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	api := router.Group("/api")
	{
		api.POST("/auth/login", h.LoginHandler)
		api.POST("/signup", h.SignupHandler)

		authed := api.Group("")
		authed.Use(AuthRequiredMiddleware(parser))
		{
			authed.GET("/auctionItems", h.ListItemsHandler)
			authed.POST("/createBid", h.CreateBidHandler)
		}
	}

	return router
}
