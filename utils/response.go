package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONMessage sends a response carrying only a message field. Error responses
// use this shape because the bidder client surfaces the message verbatim.
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message": message,
	})
}

// JSONItems sends the item collection wrapped in an items field, the
// object-wrapped variant of the list response.
func JSONItems(c *gin.Context, status int, items any) {
	c.JSON(status, gin.H{
		"items": items,
	})
}
