// Package handlers implements the HTTP handlers of the API. Every failure is
// caught here and mapped to a single user-facing message; success and error
// share the same message channel, the status code tells them apart.
package handlers

import "github.com/gin-gonic/gin"

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
