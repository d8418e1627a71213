package antilinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasLink(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"check out https://example.com/page", true},
		{"HTTP://EXAMPLE.COM", true},
		{"www.example.com is neat", true},
		{"join discord.gg/abc123", true},
		{"join discordapp.com/invite/abc123", true},
		{"join discord.com/invite/abc123", true},
		{"no links here", false},
		{"", false},
		{"spelling out h t t p s colon slash slash", false},
		{"price was 3.50, discord was mentioned", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasLink(tt.content), "content: %q", tt.content)
	}
}
