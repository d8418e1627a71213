package statusrole

import (
	"strings"

	"seina-bot/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// customStatus picks the custom status activity out of a presence, or nil
// when none is set.
func customStatus(activities []*discordgo.Activity) *discordgo.Activity {
	for _, a := range activities {
		if a != nil && a.Type == discordgo.ActivityTypeCustom {
			return a
		}
	}
	return nil
}

// Matches reports whether a member's custom status satisfies the rule:
// case-insensitive substring match on the status text, or an exact match on
// the status emoji (unicode glyph or custom emoji ID) for emoji patterns.
func Matches(rule domain.StatusRoleRule, activities []*discordgo.Activity) bool {
	pattern := strings.TrimSpace(rule.Pattern)
	if pattern == "" {
		return false
	}
	act := customStatus(activities)
	if act == nil {
		return false
	}

	if act.State != "" && strings.Contains(strings.ToLower(act.State), strings.ToLower(pattern)) {
		return true
	}
	if act.Emoji.Name != "" && act.Emoji.Name == pattern {
		return true
	}
	if act.Emoji.ID != "" && act.Emoji.ID == pattern {
		return true
	}
	return false
}
