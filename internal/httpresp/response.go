package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Message writes the standard mutation envelope: {message, ...ids}.
func Message(c *gin.Context, status int, message string, ids gin.H) {
	body := gin.H{"message": message}
	for k, v := range ids {
		body[k] = v
	}
	c.JSON(status, body)
}
