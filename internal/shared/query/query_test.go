package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storymap-backend/internal/shared/apperror"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *Bounds
		wantErr bool
	}{
		{name: "absent", raw: "", want: nil},
		{name: "four numbers", raw: "10,20,30,40", want: &Bounds{South: 10, West: 20, North: 30, East: 40}},
		{name: "zero is a coordinate", raw: "0,0,60,60", want: &Bounds{South: 0, West: 0, North: 60, East: 60}},
		{name: "spaces and negatives", raw: " -10.5, -20 ,30,40.25 ", want: &Bounds{South: -10.5, West: -20, North: 30, East: 40.25}},
		{name: "three values", raw: "1,2,3", wantErr: true},
		{name: "five values", raw: "1,2,3,4,5", wantErr: true},
		{name: "not a number", raw: "a,2,3,4", wantErr: true},
		{name: "empty component", raw: "1,,3,4", wantErr: true},
		{name: "NaN", raw: "NaN,2,3,4", wantErr: true},
		{name: "infinity", raw: "1,2,Inf,4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBounds(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				assert.Equal(t, boundsMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBounds_Contains(t *testing.T) {
	b, err := ParseBounds("0,0,60,60")
	require.NoError(t, err)

	assert.True(t, b.Contains(10, 10))
	assert.True(t, b.Contains(50, 50))
	assert.True(t, b.Contains(0, 60))
	assert.False(t, b.Contains(-10, -10))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		offset    string
		want      Page
		wantError string
	}{
		{name: "defaults", want: Page{Limit: 10, Offset: 0}},
		{name: "explicit", limit: "25", offset: "50", want: Page{Limit: 25, Offset: 50}},
		{name: "max limit", limit: "100", want: Page{Limit: 100}},
		{name: "limit zero", limit: "0", wantError: "limit must be between 1 and 100"},
		{name: "limit too big", limit: "101", wantError: "limit must be between 1 and 100"},
		{name: "limit not a number", limit: "ten", wantError: "limit must be between 1 and 100"},
		{name: "negative offset", offset: "-1", wantError: "offset must be non-negative"},
		{name: "offset not a number", offset: "1.5", wantError: "offset must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.limit, tt.offset)
			if tt.wantError != "" {
				assert.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_Validate(t *testing.T) {
	assert.NoError(t, Page{Limit: 1, Offset: 0}.Validate())
	assert.Error(t, Page{Limit: 0}.Validate())
	assert.Error(t, Page{Limit: 10, Offset: -5}.Validate())
}

func TestParsePlaceLimit(t *testing.T) {
	limit, err := ParsePlaceLimit("")
	require.NoError(t, err)
	assert.Equal(t, 1000, limit)

	limit, err = ParsePlaceLimit("50")
	require.NoError(t, err)
	assert.Equal(t, 50, limit)

	limit, err = ParsePlaceLimit("5000")
	require.NoError(t, err)
	assert.Equal(t, 1000, limit)

	_, err = ParsePlaceLimit("0")
	assert.EqualError(t, err, "limit must be a positive integer")

	_, err = ParsePlaceLimit("abc")
	assert.Error(t, err)
}

func TestNewPageMeta(t *testing.T) {
	assert.Equal(t,
		PageMeta{Total: 15, Limit: 10, Offset: 0, HasMore: true},
		NewPageMeta(15, Page{Limit: 10, Offset: 0}),
	)
	assert.Equal(t,
		PageMeta{Total: 15, Limit: 10, Offset: 10, HasMore: false},
		NewPageMeta(15, Page{Limit: 10, Offset: 10}),
	)
	assert.False(t, NewPageMeta(0, Page{Limit: 10}).HasMore)
}
