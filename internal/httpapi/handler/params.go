package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"recipehub/internal/httpapi/dto"
)

// pageFromQuery reads ?page= and ?take= and normalizes them. Unparsable
// values degrade to the defaults instead of failing the request; an explicit
// out-of-range take is clamped, so ?take=0 means 1, not the default.
func pageFromQuery(c *gin.Context) dto.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	take := dto.DefaultTake
	if raw := c.Query("take"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			take = n
		}
	}
	return dto.NewPageRequest(page, take)
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
