package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"storymap-backend/internal/shared/validate"
)

const (
	MsgPlaceIDInvalid     = "placeId is required and must be a valid UUID"
	MsgURLInvalid         = "url is required and must be a valid http or https URL"
	MsgTitleInvalid       = "title must be a string of at most 300 characters"
	MsgDescriptionInvalid = "description must be a string of at most 2000 characters"
	MsgImageInvalid       = "image must be a valid URL if provided"
	MsgPlaceIDQueryNeeded = "placeId query parameter is required"
)

// CreateTraceRequest is the raw POST /traces body.
type CreateTraceRequest struct {
	PlaceID     interface{} `json:"placeId"`
	URL         interface{} `json:"url"`
	Title       interface{} `json:"title"`
	Description interface{} `json:"description"`
	Image       interface{} `json:"image"`
}

// NewTrace is an accepted CreateTraceRequest. Title is nil when the
// submitter left it out; readers then see the host.
type NewTrace struct {
	PlaceID     uuid.UUID
	URL         string
	Host        string
	Title       *string
	Description *string
	Image       *string
}

// Validate checks every field and reports all failures in field order.
func (r CreateTraceRequest) Validate() (*NewTrace, []string) {
	var c validate.Collector

	c.Check(r.PlaceID,
		validation.Required.Error(MsgPlaceIDInvalid),
		validate.String(MsgPlaceIDInvalid),
		is.UUID.Error(MsgPlaceIDInvalid),
	)

	c.Check(r.URL,
		validation.Required.Error(MsgURLInvalid),
		validate.WebURL(MsgURLInvalid),
	)

	if r.Title != nil {
		c.Check(r.Title,
			validate.String(MsgTitleInvalid),
			validate.MaxRunes(MaxTitleLength, MsgTitleInvalid),
		)
	}

	if r.Description != nil {
		c.Check(r.Description,
			validate.String(MsgDescriptionInvalid),
			validate.MaxRunes(MaxDescriptionLength, MsgDescriptionInvalid),
		)
	}

	if r.Image != nil && r.Image != "" {
		c.Check(r.Image, validate.AbsoluteURL(MsgImageInvalid))
	}

	if c.HasErrors() {
		return nil, c.Messages()
	}

	u, _ := validate.ParseWebURL(strings.TrimSpace(r.URL.(string)))
	return &NewTrace{
		PlaceID:     uuid.MustParse(r.PlaceID.(string)),
		URL:         u.String(),
		Host:        strings.ToLower(u.Host),
		Title:       validate.OptionalString(r.Title),
		Description: validate.OptionalString(r.Description),
		Image:       validate.OptionalString(r.Image),
	}, nil
}
