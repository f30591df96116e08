package query

import (
	"strconv"
	"strings"

	"storymap-backend/internal/shared/apperror"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	DefaultPlaceLimit = 1000
	MaxPlaceLimit     = 1000
)

// Page is a validated offset/limit window.
type Page struct {
	Limit  int
	Offset int
}

// PageMeta is the "pagination" object of list responses.
type PageMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// ParsePage reads limit/offset query values with defaults 10/0.
// limit must be in [1,100]; offset must be >= 0.
func ParsePage(limitRaw, offsetRaw string) (Page, error) {
	page := Page{Limit: DefaultPageLimit}

	if s := strings.TrimSpace(limitRaw); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return Page{}, apperror.BadRequest("limit must be between 1 and 100")
		}
		page.Limit = limit
	}

	if s := strings.TrimSpace(offsetRaw); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			return Page{}, apperror.BadRequest("offset must be non-negative")
		}
		page.Offset = offset
	}

	return page, nil
}

// Validate re-checks a page built outside of ParsePage (service entry points).
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return apperror.BadRequest("limit must be between 1 and 100")
	}
	if p.Offset < 0 {
		return apperror.BadRequest("offset must be non-negative")
	}
	return nil
}

// ParsePlaceLimit reads the places limit: default 1000, positive, capped at 1000.
func ParsePlaceLimit(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultPlaceLimit, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 1 {
		return 0, apperror.BadRequest("limit must be a positive integer")
	}
	if limit > MaxPlaceLimit {
		limit = MaxPlaceLimit
	}
	return limit, nil
}

func NewPageMeta(total int, page Page) PageMeta {
	return PageMeta{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.Offset+page.Limit < total,
	}
}
