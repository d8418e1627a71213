package personalchannels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChannelName(t *testing.T) {
	assert.NoError(t, ValidateChannelName("my-cozy-corner"))
	assert.NoError(t, ValidateChannelName("ok"))

	assert.Error(t, ValidateChannelName("x"), "too short")
	assert.Error(t, ValidateChannelName("  x  "), "length is checked after trimming")
	assert.Error(t, ValidateChannelName(strings.Repeat("a", 101)), "too long")

	assert.Error(t, ValidateChannelName("fake-admin-channel"))
	assert.Error(t, ValidateChannelName("STAFF-lounge"), "blocklist is case-insensitive")
	assert.Error(t, ValidateChannelName("the-rules"))
}

func TestValidateTopic(t *testing.T) {
	assert.NoError(t, ValidateTopic(""))
	assert.NoError(t, ValidateTopic(strings.Repeat("a", 1024)))
	assert.Error(t, ValidateTopic(strings.Repeat("a", 1025)))
}
