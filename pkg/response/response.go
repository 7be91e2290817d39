package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the response envelope for the operational API.
type Body struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a 200 response with the given data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Status: "ok", Data: data})
}

// Error writes an error response with the given status code and message.
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Body{Status: "error", Message: message})
}
