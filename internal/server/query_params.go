package server

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var errNotPositive = errors.New("must be a positive integer")

// queryValue returns the first non-empty value among the given query keys.
func queryValue(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			return v
		}
	}
	return ""
}

func parseOptionalFloat(value string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil, strconv.ErrSyntax
	}
	return &parsed, nil
}

// parseOptionalPositiveInt returns 0 for an absent value so the service default applies.
func parseOptionalPositiveInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, err
	}
	if parsed < 1 {
		return 0, errNotPositive
	}
	return parsed, nil
}

func parsePage(c *gin.Context) (page, limit int, err error) {
	page, err = parseOptionalPositiveInt(c.Query("page"))
	if err != nil {
		return 0, 0, newValidationError("page", "invalid_page", "page must be a positive integer")
	}
	limit, err = parseOptionalPositiveInt(c.Query("limit"))
	if err != nil {
		return 0, 0, newValidationError("limit", "invalid_limit", "limit must be a positive integer")
	}
	return page, limit, nil
}
