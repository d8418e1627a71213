package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatTimeTpl formats t using a template with date placeholders, for CSV
// exports and backup filenames where Go's reference-time layout reads poorly.
//
// Supported placeholders:
// - YYYY: 4-digit year
// - YY: 2-digit year
// - MM: 2-digit month (01-12)
// - DD: 2-digit day (01-31)
// - hh: 2-digit hour (00-23)
// - mm: 2-digit minute (00-59)
// - ss: 2-digit second (00-59)
//
// Example:
//
//	FormatTimeTpl(t, "YYYY.MM.DD")       // "2023.11.10"
//	FormatTimeTpl(t, "YYYY-MM-DD hh:mm") // "2023-11-10 00:15"
func FormatTimeTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}

	// Longest placeholder first so YY never eats half of YYYY.
	replacements := [...][2]string{
		{"YYYY", "2006"},
		{"YY", "06"},
		{"MM", "01"},
		{"DD", "02"},
		{"hh", "15"},
		{"mm", "04"},
		{"ss", "05"},
	}
	goTpl := tpl
	for _, r := range replacements {
		goTpl = strings.ReplaceAll(goTpl, r[0], r[1])
	}

	return t.Format(goTpl)
}

// DiscordTimestamp renders t as Discord timestamp markup, which clients show
// in the viewer's local timezone. Style is one of Discord's format
// characters: 't' short time, 'T' long time, 'd' short date, 'D' long date,
// 'f' short date-time, 'F' long date-time, 'R' relative.
func DiscordTimestamp(t time.Time, style byte) string {
	return fmt.Sprintf("<t:%d:%c>", t.Unix(), style)
}
