package helpers

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"eventpass/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = math.MaxInt32
)

// ParseAttendeeFilter reads page, limit and query from the request query string.
// Missing page or limit fall back to defaults and limit is capped at MaxLimit.
// Values that are not positive integers are rejected, as is a page above MaxPage.
func ParseAttendeeFilter(r *http.Request) (domain.AttendeeFilter, error) {
	q := r.URL.Query()
	page, err := positiveInt(q, "page", DefaultPage)
	if err != nil {
		return domain.AttendeeFilter{}, err
	}
	if page > MaxPage {
		return domain.AttendeeFilter{}, fmt.Errorf("page must not exceed %d", MaxPage)
	}
	limit, err := positiveInt(q, "limit", DefaultLimit)
	if err != nil {
		return domain.AttendeeFilter{}, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return domain.AttendeeFilter{
		PaginationParams: domain.PaginationParams{Page: page, PageSize: limit},
		Query:            q.Get("query"),
	}, nil
}

func positiveInt(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return v, nil
}
