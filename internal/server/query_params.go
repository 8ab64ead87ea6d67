package server

import (
	"strconv"
	"strings"
	"time"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

const dateOnlyLayout = "2006-01-02"

// parsePeriodFilter reads the optional month/year/date query parameters.
// An exact date wins over month and year.
func parsePeriodFilter(month, year, date string) (invoicedomain.PeriodFilter, error) {
	var filter invoicedomain.PeriodFilter

	if trimmed := strings.TrimSpace(date); trimmed != "" {
		parsed, err := time.Parse(dateOnlyLayout, trimmed)
		if err != nil {
			return filter, ErrInvalidRequest
		}
		filter.SpecificDate = &parsed
		return filter, nil
	}

	if trimmed := strings.TrimSpace(month); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil || parsed < 1 || parsed > 12 {
			return filter, ErrInvalidRequest
		}
		filter.Month = parsed
	}
	if trimmed := strings.TrimSpace(year); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil || parsed < 2000 || parsed > 2200 {
			return filter, ErrInvalidRequest
		}
		filter.Year = parsed
	}
	if filter.Month != 0 && filter.Year == 0 {
		return filter, ErrInvalidRequest
	}
	return filter, nil
}

func parsePageSize(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 0, ErrInvalidRequest
	}
	return parsed, nil
}
