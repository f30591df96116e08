package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storymap-backend/internal/shared/validate"
)

// Place is a named point on the map. Slug is unique and never changes.
type Place struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Slug        string    `json:"slug"`
	Country     *string   `json:"country"`
	Continent   *string   `json:"continent"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePlaceRequest is the raw POST /places body. Fields stay untyped so
// a wrong JSON type is reported as a validation message, not a bind error.
type CreatePlaceRequest struct {
	Name        interface{} `json:"name"`
	Lat         interface{} `json:"lat"`
	Lng         interface{} `json:"lng"`
	Country     interface{} `json:"country"`
	Continent   interface{} `json:"continent"`
	Description interface{} `json:"description"`
}

// NewPlace is an accepted, normalized CreatePlaceRequest.
type NewPlace struct {
	Name        string
	Lat         float64
	Lng         float64
	Country     *string
	Continent   *string
	Description *string
}

const (
	MsgNameRequired = "name is required and must be a string"
	MsgLatRange     = "lat must be a number between -90 and 90"
	MsgLngRange     = "lng must be a number between -180 and 180"
)

// Validate runs every field rule and returns all failures in field order.
func (r CreatePlaceRequest) Validate() (*NewPlace, []string) {
	var c validate.Collector

	c.Check(r.Name,
		validation.Required.Error(MsgNameRequired),
		validate.String(MsgNameRequired),
		validate.NonBlank(MsgNameRequired),
	)
	c.Check(r.Lat, validate.NumberBetween(-90, 90, MsgLatRange))
	c.Check(r.Lng, validate.NumberBetween(-180, 180, MsgLngRange))

	if c.HasErrors() {
		return nil, c.Messages()
	}

	return &NewPlace{
		Name:        strings.TrimSpace(r.Name.(string)),
		Lat:         r.Lat.(float64),
		Lng:         r.Lng.(float64),
		Country:     validate.OptionalString(r.Country),
		Continent:   validate.OptionalString(r.Continent),
		Description: validate.OptionalString(r.Description),
	}, nil
}
