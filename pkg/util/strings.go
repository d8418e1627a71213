package util

// Truncate shortens s to at most max runes, ending with an ellipsis when
// something was cut. Discord embed fields cap at 1024 characters and
// descriptions at 4096, so long message previews go through this.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
