package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error represents an API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// respondError writes a JSON error body with the matching HTTP status
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": NewError(code, message)})
}
