package antilinks

import "regexp"

// linkRe matches http(s) URLs, bare www. links and Discord invites. Matching
// is deliberately loose; a moderation filter should err on the side of
// catching mangled links.
var linkRe = regexp.MustCompile(`(?i)\b(?:https?://|www\.|discord\.gg/|discord(?:app)?\.com/invite/)\S+`)

// HasLink reports whether the message content contains something that looks
// like a link.
func HasLink(content string) bool {
	return linkRe.MatchString(content)
}
