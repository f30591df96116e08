package utils

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseUUID returns uuid.Nil and false for anything that is not a UUID.
func ParseUUID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Average divides sum by n in decimal arithmetic, rounding half away from
// zero to places. An empty set averages to 0.
func Average(sum, n int64, places int32) float64 {
	if n == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(n), places).Float64()
	return f
}
