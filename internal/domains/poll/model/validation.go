package model

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storymap-backend/internal/shared/validate"
)

const (
	MsgRespondentInvalid = "respondent must be one of: local, traveler"
	MsgValuesInvalid     = "values must be an array of exactly 10 integers between 1 and 7"
)

// SubmitPollRequest is the raw POST /places/:id/polls body.
type SubmitPollRequest struct {
	Respondent interface{} `json:"respondent"`
	Values     interface{} `json:"values"`
}

// NewPollResponse is an accepted submission.
type NewPollResponse struct {
	Respondent Respondent
	Values     [Dimensions]int
}

func (r SubmitPollRequest) Validate() (*NewPollResponse, []string) {
	var c validate.Collector

	c.Check(r.Respondent,
		validation.Required.Error(MsgRespondentInvalid),
		validate.String(MsgRespondentInvalid),
		validation.In(string(RespondentLocal), string(RespondentTraveler)).Error(MsgRespondentInvalid),
	)

	c.Check(r.Values,
		validation.Required.Error(MsgValuesInvalid),
		validate.Array(MsgValuesInvalid),
		validation.By(func(value interface{}) error {
			if _, ok := parseValues(value.([]interface{})); !ok {
				return errors.New(MsgValuesInvalid)
			}
			return nil
		}),
	)

	if c.HasErrors() {
		return nil, c.Messages()
	}

	values, _ := parseValues(r.Values.([]interface{}))
	return &NewPollResponse{
		Respondent: Respondent(r.Respondent.(string)),
		Values:     values,
	}, nil
}

func parseValues(raw []interface{}) ([Dimensions]int, bool) {
	var out [Dimensions]int
	if len(raw) != Dimensions {
		return out, false
	}
	for i, v := range raw {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) || n < MinValue || n > MaxValue {
			return out, false
		}
		out[i] = int(n)
	}
	return out, true
}
