// Package httpresp writes the success half of the API response contract:
// every 2xx body is {"success": true, "data": ..., "error": null}.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Error   any  `json:"error"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// List wraps a paginated collection in the standard envelope.
func List[T any](c *gin.Context, items []T, total int64, page, limit int) {
	if items == nil {
		items = []T{}
	}
	OK(c, Page[T]{Items: items, Total: total, Page: page, Limit: limit})
}
