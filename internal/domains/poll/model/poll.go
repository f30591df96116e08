package model

import (
	"time"

	"github.com/google/uuid"
)

type Respondent string

const (
	RespondentLocal    Respondent = "local"
	RespondentTraveler Respondent = "traveler"
)

func (r Respondent) IsValid() bool {
	return r == RespondentLocal || r == RespondentTraveler
}

const (
	Dimensions = 10
	MinValue   = 1
	MaxValue   = 7
)

// Labels names the poll dimensions in answer order.
var Labels = [Dimensions]string{
	"Helpfulness",
	"Safety",
	"Openness",
	"Trad/Modern",
	"Pace",
	"Indiv/Comm",
	"Hospitality",
	"Equality",
	"Religion",
	"Trust",
}

type PollResponse struct {
	ID         uuid.UUID
	PlaceID    uuid.UUID
	Respondent Respondent
	Values     [Dimensions]int
	CreatedAt  time.Time
}

// Tally is the per-respondent aggregate the store hands back.
type Tally struct {
	Respondent Respondent
	Responses  int64
	Sums       [Dimensions]int64
}

type Counts struct {
	Locals    int64 `json:"locals"`
	Travelers int64 `json:"travelers"`
}

// Results is the GET /places/:id/polls/results body.
type Results struct {
	Labels    []string  `json:"labels"`
	Locals    []float64 `json:"locals"`
	Travelers []float64 `json:"travelers"`
	Counts    Counts    `json:"counts"`
}
