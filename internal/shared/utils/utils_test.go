package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Paris", "paris"},
		{"spaces", "New York City", "new-york-city"},
		{"punctuation stripped", "  Café de Flore!! ", "caf-de-flore"},
		{"whitespace runs", "São\t\tPaulo   Centro", "so-paulo-centro"},
		{"hyphen runs", "Rio -- de --- Janeiro", "rio-de-janeiro"},
		{"leading and trailing hyphens", "--Kyoto--", "kyoto"},
		{"digits kept", "District 9", "district-9"},
		{"no ascii alphanumerics", "東京", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlug(tt.input)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Regexp(t, slugPattern, got)
			}
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "lisbon", SlugCandidate("lisbon", 0))
	assert.Equal(t, "lisbon-1", SlugCandidate("lisbon", 1))
	assert.Equal(t, "lisbon-12", SlugCandidate("lisbon", 12))
}

func TestWhereBuilder(t *testing.T) {
	w := &WhereBuilder{}
	assert.Equal(t, "", w.Clause())

	w.Add("s.status = %s", "approved")
	w.Add("p.lat BETWEEN %s AND %s", 1.5, 2.5)
	limit := w.Next(10)

	assert.Equal(t, " WHERE s.status = $1 AND p.lat BETWEEN $2 AND $3", w.Clause())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{"approved", 1.5, 2.5, 10}, w.Args())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 4.33, Average(13, 3, 2))
	assert.Equal(t, 2.67, Average(8, 3, 2))
	assert.Equal(t, 5.0, Average(10, 2, 2))
	assert.Equal(t, 1.13, Average(9, 8, 2))
	assert.Equal(t, 0.0, Average(0, 0, 2))
}

func TestParseUUID(t *testing.T) {
	_, ok := ParseUUID("not-a-uuid")
	assert.False(t, ok)

	_, ok = ParseUUID("")
	assert.False(t, ok)

	id, ok := ParseUUID("3f1c2a4e-9b7d-4c1e-8a2b-5d6e7f809a1b")
	assert.True(t, ok)
	assert.Equal(t, "3f1c2a4e-9b7d-4c1e-8a2b-5d6e7f809a1b", id.String())
}
