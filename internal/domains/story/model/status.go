package model

import "fmt"

// Status is the moderation state of a story.
//
//	pending ──► approved
//	   └──────► rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus accepts exactly the three lowercase state names.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsValid()
}

// Transition describes how to move a story from one status to another.
type Transition struct {
	From Status
	To   Status
	// Noop is set when From == To; nothing must be written.
	Noop bool
}

// PlanTransition checks from → to against the moderation rules.
func PlanTransition(from, to Status) (Transition, error) {
	if !from.IsValid() || !to.IsValid() {
		return Transition{}, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, from, to)
	}
	if from == to {
		return Transition{From: from, To: to, Noop: true}, nil
	}
	if from == StatusPending && (to == StatusApproved || to == StatusRejected) {
		return Transition{From: from, To: to}, nil
	}
	return Transition{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
