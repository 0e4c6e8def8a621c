// internal/handlers/analytics/analytics_handler_test.go
package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	c.Request = req
	return c, w
}

func TestParseBoundedInt(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		def       int
		min, max  int
		want      int
		wantError bool
	}{
		{"default applies", "", 5, 1, 100, 5, false},
		{"explicit value", "limit=42", 5, 1, 100, 42, false},
		{"lower bound", "limit=1", 5, 1, 100, 1, false},
		{"upper bound", "limit=100", 5, 1, 100, 100, false},
		{"below range", "limit=0", 5, 1, 100, 0, true},
		{"above range", "limit=101", 5, 1, 100, 0, true},
		{"not a number", "limit=abc", 5, 1, 100, 0, true},
		{"float rejected", "limit=2.5", 5, 1, 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, tt.query)

			got, ok := parseBoundedInt(c, "limit", tt.def, tt.min, tt.max)
			if tt.wantError {
				assert.False(t, ok)
				assert.Equal(t, http.StatusBadRequest, w.Code)

				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReferenceDate(t *testing.T) {
	t.Run("default applies", func(t *testing.T) {
		c, _ := testContext(t, "")

		d, ok := parseReferenceDate(c)
		require.True(t, ok)
		assert.Equal(t, time.Date(2008, time.May, 6, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("explicit date", func(t *testing.T) {
		c, _ := testContext(t, "reference_date=2007-12-31")

		d, ok := parseReferenceDate(c)
		require.True(t, ok)
		assert.Equal(t, time.Date(2007, time.December, 31, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		c, w := testContext(t, "reference_date=31-12-2007")

		_, ok := parseReferenceDate(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("impossible date rejected", func(t *testing.T) {
		c, w := testContext(t, "reference_date=2008-02-30")

		_, ok := parseReferenceDate(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
