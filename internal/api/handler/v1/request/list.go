package request

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var errInvalidOrder = errors.New("order must be asc or desc")

// ActivitySortColumns is the allow-list for the public activity listing.
var ActivitySortColumns = map[string]string{
	"title":     "title",
	"startDate": "start_date",
	"endDate":   "end_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// JoinedSortColumns is the allow-list for a user's joined-activity
// listing. Join time lives on the participation row, the rest on the
// joined activity.
var JoinedSortColumns = map[string]string{
	"joinedAt":  "activity_participations.joined_at",
	"title":     "activities.title",
	"startDate": "activities.start_date",
	"endDate":   "activities.end_date",
	"createdAt": "activities.created_at",
	"updatedAt": "activities.updated_at",
}

// ParsePagination clamps page and pageSize into range instead of
// rejecting them.
func ParsePagination(ctx *gin.Context, defaultPageSize, maxPageSize int) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(ctx.Query("pageSize"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}

	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// ParseSort maps the orderBy query parameter through the allow-list to a
// column expression. Unknown sort keys are rejected so user input never
// reaches the ORDER BY clause.
func ParseSort(ctx *gin.Context, columns map[string]string, defaultKey string) (string, string, error) {
	key := ctx.DefaultQuery("orderBy", defaultKey)

	column, ok := columns[key]
	if !ok {
		return "", "", fmt.Errorf("orderBy must be one of: %v", strings.Join(sortKeys(columns), ", "))
	}

	switch strings.ToLower(ctx.DefaultQuery("order", "desc")) {
	case "desc":
		return column, "DESC", nil
	case "asc":
		return column, "ASC", nil
	default:
		return "", "", errInvalidOrder
	}
}

// ParseUintQuery reads an optional positive integer query parameter,
// returning zero when absent.
func ParseUintQuery(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%v must be a positive integer", name)
	}

	return uint(v), nil
}

// ParseUintParam reads a positive integer path parameter.
func ParseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%v must be a positive integer", name)
	}

	return uint(v), nil
}

func sortKeys(columns map[string]string) []string {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
