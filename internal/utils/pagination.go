// internal/utils/pagination.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultGalleryCount = 24
	MaxGalleryCount     = 50
)

type GalleryParams struct {
	Type  string `json:"type"`
	Query string `json:"query"`
	Count int    `json:"count"`
	Page  int    `json:"page"`
}

func GetGalleryParams(c *gin.Context) GalleryParams {
	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(DefaultGalleryCount)))
	if err != nil || count < 1 {
		count = DefaultGalleryCount
	}
	if count > MaxGalleryCount {
		count = MaxGalleryCount
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return GalleryParams{
		Type:  strings.TrimSpace(c.Query("type")),
		Query: strings.TrimSpace(c.Query("query")),
		Count: count,
		Page:  page,
	}
}

// SplitList parses a comma separated query value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
