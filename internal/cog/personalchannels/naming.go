package personalchannels

import (
	"fmt"
	"strings"
)

const (
	minNameLen  = 2
	maxNameLen  = 100
	maxTopicLen = 1024
)

// nameBlocklist rejects names that imitate staff or system channels.
var nameBlocklist = []string{
	"admin",
	"announcement",
	"moderator",
	"mod-",
	"official",
	"rules",
	"staff",
	"system",
}

// ValidateChannelName enforces Discord's length bounds and the blocklist.
// The returned error text is shown to the member as-is.
func ValidateChannelName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLen || len(trimmed) > maxNameLen {
		return fmt.Errorf("channel names must be %d to %d characters", minNameLen, maxNameLen)
	}
	lower := strings.ToLower(trimmed)
	for _, blocked := range nameBlocklist {
		if strings.Contains(lower, blocked) {
			return fmt.Errorf("channel names may not contain `%s`", blocked)
		}
	}
	return nil
}

// ValidateTopic enforces Discord's topic length bound.
func ValidateTopic(topic string) error {
	if len(topic) > maxTopicLen {
		return fmt.Errorf("topics are capped at %d characters, yours is %d", maxTopicLen, len(topic))
	}
	return nil
}
