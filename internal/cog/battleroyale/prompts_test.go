package battleroyale

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seina-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKillLineReplacesPlaceholders(t *testing.T) {
	pack := &PromptPack{Kill: []string{"{killer} beat {killed}, and {killed} stayed down."}}
	line := pack.KillLine(rand.New(rand.NewSource(1)), "**Asterix**", "**Obelix**")
	assert.Equal(t, "**Asterix** beat **Obelix**, and **Obelix** stayed down.", line)
}

func TestWinnerLineReplacesPlaceholder(t *testing.T) {
	pack := &PromptPack{Winner: []string{"All hail {winner}!"}}
	line := pack.WinnerLine(rand.New(rand.NewSource(1)), "**Asterix**")
	assert.Equal(t, "All hail **Asterix**!", line)
}

func TestBuiltinPromptsNameTheVictim(t *testing.T) {
	assert.NotEmpty(t, killPrompts)
	for _, p := range killPrompts {
		assert.Contains(t, p, "{killed}", "kill line must name the victim: %q", p)
	}
	assert.NotEmpty(t, winnerPrompts)
	for _, p := range winnerPrompts {
		assert.Contains(t, p, "{winner}", "winner line must name the winner: %q", p)
	}
}

func TestLoadPromptPack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json5")
	content := `{
	// custom lines for the test arena
	kill: [
		"{killer} tested {killed}.",
	],
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pack, err := LoadPromptPack(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"{killer} tested {killed}."}, pack.Kill)
	assert.Equal(t, winnerPrompts, pack.Winner, "sections left out keep the built-ins")
}

func TestLoadPromptPackErrors(t *testing.T) {
	_, err := LoadPromptPack(filepath.Join(t.TempDir(), "missing.json5"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json5")
	require.NoError(t, os.WriteFile(path, []byte("{kill: [unterminated"), 0o644))
	_, err = LoadPromptPack(path)
	assert.Error(t, err)
}

func TestHumanizeList(t *testing.T) {
	assert.Equal(t, "", humanizeList(nil))
	assert.Equal(t, "a", humanizeList([]string{"a"}))
	assert.Equal(t, "a and b", humanizeList([]string{"a", "b"}))
	assert.Equal(t, "a, b, and c", humanizeList([]string{"a", "b", "c"}))
}

func TestRosterTextTruncates(t *testing.T) {
	names := make([]string, 400)
	for i := range names {
		names[i] = strings.Repeat("x", 20)
	}
	text := rosterText(names)
	assert.LessOrEqual(t, len([]rune(text)), rosterLimit)
	assert.True(t, strings.HasSuffix(text, "…"))
}

func TestEffectiveConfigDefaults(t *testing.T) {
	cfg := effectiveConfig(domain.BattleConfig{})
	assert.Equal(t, defaultPrize, cfg.Prize)
	assert.Equal(t, defaultWait, cfg.WaitSec)
	assert.Equal(t, defaultEmoji, cfg.Emoji)
	assert.Equal(t, defaultCooldown, cfg.Cooldown)

	set := effectiveConfig(domain.BattleConfig{Prize: 500, Cooldown: 90})
	assert.Equal(t, 500, set.Prize)
	assert.Equal(t, 90, set.Cooldown)
	assert.Equal(t, defaultWait, set.WaitSec, "unset fields still fall back")
}
