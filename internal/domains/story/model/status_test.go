package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		wantErr  bool
		wantNoop bool
	}{
		{StatusPending, StatusApproved, false, false},
		{StatusPending, StatusRejected, false, false},
		{StatusPending, StatusPending, false, true},
		{StatusApproved, StatusApproved, false, true},
		{StatusRejected, StatusRejected, false, true},
		{StatusApproved, StatusRejected, true, false},
		{StatusRejected, StatusApproved, true, false},
		{StatusApproved, StatusPending, true, false},
		{StatusRejected, StatusPending, true, false},
		{StatusPending, Status("archived"), true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			tr, err := PlanTransition(tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantNoop, tr.Noop)
			assert.Equal(t, tt.to, tr.To)
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected"} {
		s, ok := ParseStatus(raw)
		assert.True(t, ok)
		assert.Equal(t, Status(raw), s)
	}

	for _, raw := range []string{"", "Approved", "all", "deleted"} {
		_, ok := ParseStatus(raw)
		assert.False(t, ok, raw)
	}
}
