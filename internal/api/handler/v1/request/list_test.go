package request

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+query, nil)

	return ctx
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page, pageSize := ParsePagination(testContext(t, ""), 20, 100)
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
	})

	t.Run("passes valid values", func(t *testing.T) {
		page, pageSize := ParsePagination(testContext(t, "page=3&pageSize=50"), 20, 100)
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, pageSize)
	})

	t.Run("clamps oversized pageSize", func(t *testing.T) {
		_, pageSize := ParsePagination(testContext(t, "pageSize=5000"), 20, 100)
		assert.Equal(t, 100, pageSize)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		page, pageSize := ParsePagination(testContext(t, "page=-2&pageSize=abc"), 20, 100)
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
	})
}

func TestParseSort(t *testing.T) {
	t.Run("default key and order", func(t *testing.T) {
		column, order, err := ParseSort(testContext(t, ""), ActivitySortColumns, "createdAt")
		require.NoError(t, err)
		assert.Equal(t, "created_at", column)
		assert.Equal(t, "DESC", order)
	})

	t.Run("maps camelCase key", func(t *testing.T) {
		column, order, err := ParseSort(testContext(t, "orderBy=startDate&order=asc"), ActivitySortColumns, "createdAt")
		require.NoError(t, err)
		assert.Equal(t, "start_date", column)
		assert.Equal(t, "ASC", order)
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		_, _, err := ParseSort(testContext(t, "orderBy=points"), ActivitySortColumns, "createdAt")
		assert.Error(t, err)
	})

	t.Run("rejects unknown order", func(t *testing.T) {
		_, _, err := ParseSort(testContext(t, "order=sideways"), ActivitySortColumns, "createdAt")
		assert.ErrorIs(t, err, errInvalidOrder)
	})

	t.Run("joined columns carry table prefixes", func(t *testing.T) {
		column, _, err := ParseSort(testContext(t, "orderBy=joinedAt"), JoinedSortColumns, "joinedAt")
		require.NoError(t, err)
		assert.Equal(t, "activity_participations.joined_at", column)
	})
}

func TestParseUintQuery(t *testing.T) {
	t.Run("absent is zero", func(t *testing.T) {
		v, err := ParseUintQuery(testContext(t, ""), "categoryId")
		require.NoError(t, err)
		assert.Zero(t, v)
	})

	t.Run("parses positive", func(t *testing.T) {
		v, err := ParseUintQuery(testContext(t, "categoryId=7"), "categoryId")
		require.NoError(t, err)
		assert.EqualValues(t, 7, v)
	})

	t.Run("rejects zero and garbage", func(t *testing.T) {
		_, err := ParseUintQuery(testContext(t, "categoryId=0"), "categoryId")
		assert.Error(t, err)

		_, err = ParseUintQuery(testContext(t, "categoryId=seven"), "categoryId")
		assert.Error(t, err)
	})
}
