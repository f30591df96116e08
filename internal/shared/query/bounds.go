// Package query translates request query strings into typed read filters.
package query

import (
	"math"
	"strconv"
	"strings"

	"storymap-backend/internal/shared/apperror"
)

const boundsMessage = "bounds must be four comma-separated numbers: south,west,north,east"

// Bounds is a map viewport rectangle.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// ParseBounds decodes "south,west,north,east". An empty string means no
// filter. Zero is a legitimate coordinate and keeps the filter active.
func ParseBounds(raw string) (*Bounds, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, apperror.BadRequest(boundsMessage)
	}

	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apperror.BadRequest(boundsMessage)
		}
		values[i] = v
	}

	return &Bounds{
		South: values[0],
		West:  values[1],
		North: values[2],
		East:  values[3],
	}, nil
}

// Contains is the inclusive rectangle test used by the SQL filter as well.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}
