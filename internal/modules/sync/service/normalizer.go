package service

import (
	"regexp"
	"strings"
)

// emojiPattern covers the pictographic blocks Telegram channel titles
// habitually decorate themselves with. The enclosed-character span is
// limited to the emoji supplements so CJK titles survive intact.
var emojiPattern = regexp.MustCompile("[" +
	`\x{1F600}-\x{1F64F}` + // emoticons
	`\x{1F300}-\x{1F5FF}` + // symbols & pictographs
	`\x{1F680}-\x{1F6FF}` + // transport & map symbols
	`\x{1F1E0}-\x{1F1FF}` + // regional indicators (flags)
	`\x{1F900}-\x{1F9FF}` + // supplemental symbols & pictographs
	`\x{1FA70}-\x{1FAFF}` + // symbols & pictographs extended-A
	`\x{1F100}-\x{1F2FF}` + // enclosed alphanumeric/ideographic supplements
	`\x{2600}-\x{26FF}` + // miscellaneous symbols
	`\x{2700}-\x{27BF}` + // dingbats
	`\x{2B00}-\x{2BFF}` + // miscellaneous symbols & arrows
	`\x{2640}-\x{2642}` + // gender symbols
	`\x{24C2}` + // circled M
	`\x{23CF}\x{23E9}-\x{23FA}` + // eject, media controls
	`\x{231A}\x{231B}` + // watch, hourglass
	`\x{3030}` + // wavy dash
	"]+")

// invisiblePattern removes the zero-width and variation characters
// that emoji sequences leave behind once their base symbol is gone.
var invisiblePattern = regexp.MustCompile("[" +
	`\x{200D}` + // zero width joiner
	`\x{FE0F}` + // variation selector-16
	`\x{200C}` + // zero width non-joiner
	`\x{200B}` + // zero width space
	`\x{2060}` + // word joiner
	`\x{FEFF}` + // zero width no-break space
	`\x{180E}` + // mongolian vowel separator
	"]+")

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeTitle turns a channel display name into a feed title.
// Emoji and pictographic symbols are stripped unless keepEmojis is
// set; whitespace is collapsed and trimmed either way. The function is
// total and idempotent.
func NormalizeTitle(raw string, keepEmojis bool) string {
	s := raw
	if !keepEmojis {
		s = emojiPattern.ReplaceAllString(s, " ")
		s = invisiblePattern.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
