package massunban

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func ban(id, reason string) *discordgo.GuildBan {
	return &discordgo.GuildBan{User: &discordgo.User{ID: id}, Reason: reason}
}

func TestFilterBans(t *testing.T) {
	bans := []*discordgo.GuildBan{
		ban("1", "Raid participant"),
		ban("2", "raid bot"),
		ban("3", "spam"),
		ban("4", ""),
		nil,
		{Reason: "no user"},
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, filterBans(bans, ""), "empty filter keeps everything")
	assert.Equal(t, []string{"1", "2"}, filterBans(bans, "RAID"), "filter is case-insensitive")
	assert.Equal(t, []string{"3"}, filterBans(bans, " spam "), "filter is trimmed")
	assert.Empty(t, filterBans(bans, "alt account"))
}

func TestPendingExpiry(t *testing.T) {
	stashPending("fresh", &pendingRun{GuildID: "g", Created: time.Now()})
	assert.NotNil(t, takePending("fresh"))
	assert.Nil(t, takePending("fresh"), "a pending run is consumed by the first take")
	assert.Nil(t, takePending("never-stashed"))
}
