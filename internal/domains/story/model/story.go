package model

import (
	"time"

	"github.com/google/uuid"
)

// StoryTag is one of a closed set of moods a story can be filed under.
type StoryTag string

const (
	TagFunny         StoryTag = "Funny"
	TagSad           StoryTag = "Sad"
	TagInspirational StoryTag = "Inspirational"
	TagEveryday      StoryTag = "Everyday"
	TagShocking      StoryTag = "Shocking"
	TagMoving        StoryTag = "Moving"
	TagWeird         StoryTag = "Weird"
	TagNostalgic     StoryTag = "Nostalgic"
)

// ValidTags in display order.
var ValidTags = []StoryTag{
	TagFunny,
	TagSad,
	TagInspirational,
	TagEveryday,
	TagShocking,
	TagMoving,
	TagWeird,
	TagNostalgic,
}

func (t StoryTag) IsValid() bool {
	for _, v := range ValidTags {
		if t == v {
			return true
		}
	}
	return false
}

const MaxAnswerLength = 5000

// Story is a user submitted answer pinned to exactly one place.
type Story struct {
	ID             uuid.UUID  `json:"id"`
	PlaceID        uuid.UUID  `json:"place_id"`
	AnswerText     string     `json:"answer_text"`
	QuestionID     *int64     `json:"question_id"`
	Tags           []StoryTag `json:"tags"`
	Photos         []string   `json:"photos"`
	AudioURL       *string    `json:"audio_url"`
	SubmitterEmail *string    `json:"-"`
	Status         Status     `json:"status"`
	VotesScore     int        `json:"votes_score"`
	UpvotesCount   int        `json:"upvotes_count"`
	DownvotesCount int        `json:"downvotes_count"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at"`
}

// ModerationStory is the moderator's view, which includes the contact email.
type ModerationStory struct {
	*Story
	SubmitterEmail *string `json:"submitter_email"`
}

func NewModerationStory(s *Story) ModerationStory {
	return ModerationStory{Story: s, SubmitterEmail: s.SubmitterEmail}
}

// ListStoriesParams filters a place's stories.
type ListStoriesParams struct {
	PlaceID uuid.UUID
	Status  Status
	Limit   int
	Offset  int
}

// ModerateStoryRequest is the PATCH /moderation/stories/:id body.
type ModerateStoryRequest struct {
	Status string `json:"status"`
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// VoteRequest is the POST /stories/:id/vote body.
type VoteRequest struct {
	Direction string `json:"direction"`
}
