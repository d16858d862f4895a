package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/andresgluna/parkwash-app/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating receipt for payment ID: %s", c.Param("payment_id"))

		c.Next()

		if c.Writer.Status() < 300 {
			utils.InfoLogger.Printf("Receipt generated for payment ID: %s", c.Param("payment_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to generate receipt for payment ID: %s", c.Param("payment_id"))
		}
	}
}
