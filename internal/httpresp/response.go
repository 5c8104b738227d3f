package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// DatedListResponse echoes the requested date so a client that changed its
// selection mid-flight can discard responses for a date it no longer shows.
type DatedListResponse[T any] struct {
	Date  string `json:"date"`
	Data  []T    `json:"data"`
	Total int    `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func DatedList[T any](c *gin.Context, date string, data []T) {
	c.JSON(200, DatedListResponse[T]{
		Date:  date,
		Data:  data,
		Total: len(data),
	})
}
