package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput  = "Invalid input provided"
	msgInvalidID     = "Invalid id"
	msgUnauthorized  = "Unauthorized"
	msgInternalError = "Internal Server Error"
)

// Envelope is the uniform response body. Data and Errors marshal to null when unset.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors"`
}

// MessageResponse is the bare shape used by registration, 401 and unmatched routes.
type MessageResponse struct {
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string, errs any) {
	c.AbortWithStatusJSON(status, Envelope{Message: message, Errors: errs})
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, MessageResponse{Message: msgUnauthorized})
}

// routeNotFound answers as if no route matched; also used to mask disabled routes.
func routeNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, MessageResponse{
		Message: fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
	})
}

func internalServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Message: msgInternalError})
}
