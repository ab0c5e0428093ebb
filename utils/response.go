package utils

import (
	"github.com/gin-gonic/gin"

	"hotel-tracker/middleware"
)

// JSONSuccess writes {"success": true, "data": ...}.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes {"success": false, "error": ...} and tags the body with
// the request id so a user-reported message can be matched to the log line.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, errorBody(c, message))
}

// JSONErrorDetails is JSONError plus a "details" field, used for binding failures.
func JSONErrorDetails(c *gin.Context, code int, message, details string) {
	body := errorBody(c, message)
	body["details"] = details
	c.JSON(code, body)
}

func errorBody(c *gin.Context, message string) gin.H {
	body := gin.H{"success": false, "error": message}
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		body["requestId"] = id
	}
	return body
}
