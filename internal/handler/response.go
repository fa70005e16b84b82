package handler

import "github.com/gin-gonic/gin"

// All responses share one envelope: {success, message, data?, token?}.
// Failures never carry internal detail; that belongs in logs.

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondAuth(c *gin.Context, status int, message string, data interface{}, token string) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data, "token": token})
}
