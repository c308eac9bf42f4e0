package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the page window a list endpoint was asked for. Offset is derived
// so repositories can feed it straight into OFFSET/LIMIT.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the request query. Missing, malformed, or
// out-of-range values fall back to the defaults shared by every list endpoint
// instead of erroring; limit is capped at MaxLimit.
func Parse(c *gin.Context) Params {
	page := intQuery(c, "page", DefaultPage)
	limit := intQuery(c, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
