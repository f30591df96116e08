package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"storymap-backend/internal/shared/validate"
)

const (
	MsgPlaceIDInvalid     = "placeId is required and must be a valid UUID"
	MsgAnswerRequired     = "answerText is required and must be a string"
	MsgAnswerEmpty        = "answerText cannot be empty"
	MsgAnswerTooLong      = "answerText must be less than 5000 characters"
	MsgQuestionIDInvalid  = "questionId must be a positive number if provided"
	MsgTagsNotArray       = "tags must be an array"
	MsgPhotosNotArray     = "photos must be an array of URLs"
	MsgPhotosInvalid      = "All photos must be valid URLs"
	MsgAudioURLInvalid    = "audioUrl must be a valid URL if provided"
	MsgSubmitterEmailBad  = "submitterEmail must be a valid email address"
	MsgDirectionInvalid   = `direction must be "up" or "down"`
	MsgModerationStatus   = "status must be one of: approved, rejected, pending"
	MsgListStatusInvalid  = "status must be one of: approved, pending, rejected"
	MsgPlaceIDQueryNeeded = "placeId query parameter is required"
)

// CreateStoryRequest is the raw POST /stories body. Fields stay untyped so
// type mismatches become validation messages.
type CreateStoryRequest struct {
	PlaceID        interface{} `json:"placeId"`
	AnswerText     interface{} `json:"answerText"`
	QuestionID     interface{} `json:"questionId"`
	Tags           interface{} `json:"tags"`
	Photos         interface{} `json:"photos"`
	AudioURL       interface{} `json:"audioUrl"`
	SubmitterEmail interface{} `json:"submitterEmail"`
}

// NewStory is an accepted, normalized CreateStoryRequest.
type NewStory struct {
	PlaceID        uuid.UUID
	AnswerText     string
	QuestionID     *int64
	Tags           []StoryTag
	Photos         []string
	AudioURL       *string
	SubmitterEmail *string
}

// Validate runs every rule and reports all failures in a fixed order.
func (r CreateStoryRequest) Validate() (*NewStory, []string) {
	var c validate.Collector

	// 1. placeId
	c.Check(r.PlaceID,
		validation.Required.Error(MsgPlaceIDInvalid),
		validate.String(MsgPlaceIDInvalid),
		is.UUID.Error(MsgPlaceIDInvalid),
	)

	// 2. answerText
	c.Check(r.AnswerText,
		validation.Required.Error(MsgAnswerRequired),
		validate.String(MsgAnswerRequired),
		validate.NonBlank(MsgAnswerEmpty),
		validate.MaxRunes(MaxAnswerLength, MsgAnswerTooLong),
	)

	// 3. questionId
	if r.QuestionID != nil {
		c.Check(r.QuestionID, validate.PositiveInteger(MsgQuestionIDInvalid))
	}

	// 4. tags
	if r.Tags != nil {
		if c.Check(r.Tags, validate.Array(MsgTagsNotArray)) {
			if invalid := invalidTags(r.Tags.([]interface{})); len(invalid) > 0 {
				c.Add(invalidTagsMessage(invalid))
			}
		}
	}

	// 5. photos
	if r.Photos != nil {
		if c.Check(r.Photos, validate.Array(MsgPhotosNotArray)) {
			for _, photo := range r.Photos.([]interface{}) {
				if s, ok := photo.(string); !ok || !validate.IsAbsoluteURL(s) {
					c.Add(MsgPhotosInvalid)
					break
				}
			}
		}
	}

	// 6. audioUrl
	if r.AudioURL != nil {
		c.Check(r.AudioURL, validate.AbsoluteURL(MsgAudioURLInvalid))
	}

	// 7. submitterEmail
	if r.SubmitterEmail != nil && r.SubmitterEmail != "" {
		c.Check(r.SubmitterEmail, validate.Email(MsgSubmitterEmailBad))
	}

	if c.HasErrors() {
		return nil, c.Messages()
	}

	return r.normalize(), nil
}

// normalize assumes Validate passed.
func (r CreateStoryRequest) normalize() *NewStory {
	out := &NewStory{
		PlaceID:    uuid.MustParse(r.PlaceID.(string)),
		AnswerText: strings.TrimSpace(r.AnswerText.(string)),
		Tags:       []StoryTag{},
		Photos:     []string{},
	}

	if n, ok := r.QuestionID.(float64); ok {
		id := int64(n)
		out.QuestionID = &id
	}

	if tags, ok := r.Tags.([]interface{}); ok {
		seen := make(map[StoryTag]bool, len(tags))
		for _, t := range tags {
			tag := StoryTag(t.(string))
			if !seen[tag] {
				seen[tag] = true
				out.Tags = append(out.Tags, tag)
			}
		}
	}

	if photos, ok := r.Photos.([]interface{}); ok {
		for _, p := range photos {
			out.Photos = append(out.Photos, p.(string))
		}
	}

	if s, ok := r.AudioURL.(string); ok {
		out.AudioURL = &s
	}
	out.SubmitterEmail = validate.OptionalString(r.SubmitterEmail)

	return out
}

func invalidTags(tags []interface{}) []string {
	var invalid []string
	for _, t := range tags {
		s, ok := t.(string)
		if !ok || !StoryTag(s).IsValid() {
			invalid = append(invalid, fmt.Sprint(t))
		}
	}
	return invalid
}

func invalidTagsMessage(invalid []string) string {
	valid := make([]string, len(ValidTags))
	for i, t := range ValidTags {
		valid[i] = string(t)
	}
	return fmt.Sprintf("Invalid tags: %s. Valid tags are: %s",
		strings.Join(invalid, ", "),
		strings.Join(valid, ", "),
	)
}

// ParseDirection validates a vote direction.
func ParseDirection(raw string) (VoteDirection, bool) {
	switch d := VoteDirection(raw); d {
	case VoteUp, VoteDown:
		return d, true
	}
	return "", false
}
