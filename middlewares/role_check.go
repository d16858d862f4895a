package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresgluna/parkwash-app/utils"
)

func RoleCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Param("role")
		userRole, exists := c.Get("role")

		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		switch role {
		case "admin":
			if userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
				c.Abort()
				return
			}
		case "supervisor":
			if userRole != "supervisor" && userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("supervisor access required"))
				c.Abort()
				return
			}
		case "cashier":
			if userRole != "cashier" && userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("cashier access required"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
