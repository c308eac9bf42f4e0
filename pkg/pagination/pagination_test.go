package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults when absent", "", Params{Page: 1, Limit: 20, Offset: 0}},
		{"explicit window", "page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"limit capped", "limit=500", Params{Page: 1, Limit: 100, Offset: 0}},
		{"negative page falls back", "page=-2", Params{Page: 1, Limit: 20, Offset: 0}},
		{"zero limit falls back", "limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"garbage falls back", "page=abc&limit=xyz", Params{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(t, tt.query))
		})
	}
}
