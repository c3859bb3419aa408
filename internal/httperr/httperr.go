package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, details string) {
	c.JSON(status, HTTPError{
		Error:   code,
		Details: details,
	})
}

func WriteField(c *gin.Context, status int, code, details, field string) {
	c.JSON(status, HTTPError{
		Error:   code,
		Details: details,
		Field:   field,
	})
}

func BadRequest(c *gin.Context, code, details string) {
	Write(c, http.StatusBadRequest, code, details)
}

func BadRequestField(c *gin.Context, code, details, field string) {
	WriteField(c, http.StatusBadRequest, code, details, field)
}

func Unauthorized(c *gin.Context, code, details string) {
	Write(c, http.StatusUnauthorized, code, details)
}

func Forbidden(c *gin.Context, code, details string) {
	Write(c, http.StatusForbidden, code, details)
}

func NotFound(c *gin.Context, code, details string) {
	Write(c, http.StatusNotFound, code, details)
}

func Conflict(c *gin.Context, code, details string) {
	Write(c, http.StatusConflict, code, details)
}

func Internal(c *gin.Context, code, details string) {
	Write(c, http.StatusInternalServerError, code, details)
}
