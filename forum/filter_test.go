// forum/filter_test.go
package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T) *ContentFilter {
	filter, err := NewContentFilter()
	require.NoError(t, err)
	return filter
}

func TestContentFilter_FlagsEmails(t *testing.T) {
	filter := newTestFilter(t)
	assert.True(t, filter.Flags("you can write to me at test@example.com if you want"))
	assert.True(t, filter.Flags("first.last+tag@sub.domain.org"))
}

func TestContentFilter_FlagsPhoneNumbers(t *testing.T) {
	filter := newTestFilter(t)
	assert.True(t, filter.Flags("call me on 555-123-4567 any evening"))
	assert.True(t, filter.Flags("call me on 555.123.4567 any evening"))
	assert.True(t, filter.Flags("my number is 5551234567"))
}

func TestContentFilter_PassesCleanText(t *testing.T) {
	filter := newTestFilter(t)
	assert.False(t, filter.Flags("you can reach out here on the forum any time"))
	assert.False(t, filter.Flags("I went through something similar last year"))
}

func TestContentFilter_CustomPatterns(t *testing.T) {
	filter, err := NewContentFilter(`(?i)\bdiscord\.gg/\S+`)
	require.NoError(t, err)
	assert.True(t, filter.Flags("join discord.gg/abc123"))
	// Default patterns are replaced, not merged.
	assert.False(t, filter.Flags("test@example.com"))
}

func TestContentFilter_BadPattern(t *testing.T) {
	_, err := NewContentFilter(`(unclosed`)
	assert.Error(t, err)
}
