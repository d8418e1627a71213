package massunban

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const banPageSize = 1000

// collectBans pages through the full guild ban list.
func collectBans(s *discordgo.Session, guildID string) ([]*discordgo.GuildBan, error) {
	var all []*discordgo.GuildBan
	after := ""
	for {
		page, err := s.GuildBans(guildID, banPageSize, "", after)
		if err != nil {
			return nil, fmt.Errorf("page bans after %q: %w", after, err)
		}
		all = append(all, page...)
		if len(page) < banPageSize {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// filterBans returns the user IDs whose ban reason contains filter,
// case-insensitive. An empty filter keeps every ban.
func filterBans(bans []*discordgo.GuildBan, filter string) []string {
	needle := strings.ToLower(strings.TrimSpace(filter))
	var ids []string
	for _, b := range bans {
		if b == nil || b.User == nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(b.Reason), needle) {
			continue
		}
		ids = append(ids, b.User.ID)
	}
	return ids
}
