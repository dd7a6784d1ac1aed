package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern   string
		tab, slug string
		want      bool
	}{
		{"*", "program", "intro", true},
		{"intro", "program", "intro", true},
		{"intro", "program", "intro-2", false},
		{"*intro*", "api", "api-intro", true},
		{"intro.md", "program", "intro", true},
		{"api/*", "api", "api-intro", true},
		{"api/*", "app", "app-intro", false},
		{"a*/*-intro", "app", "app-intro", true},
		{"**", "program", "iterator", true},
		{"program/**", "program", "iterator", true},
		{"program/**", "api", "api-intro", false},
		{"**/quick-*", "program", "quick-start", true},
		{"**/quick-*", "program", "intro", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.tab+"/"+tt.slug, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.tab, tt.slug)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_InvalidPattern(t *testing.T) {
	_, err := Match("[", "program", "intro")
	assert.Error(t, err)
	assert.False(t, Valid("api/["))
	assert.False(t, Valid("**/["))
	assert.True(t, Valid("api/**"))
}
