package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Code: 0, Message: "ok", Data: data})
}

// Error writes a business error. HTTP status stays 200, the envelope
// code carries the failure.
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, envelope{Code: code, Message: message})
}
