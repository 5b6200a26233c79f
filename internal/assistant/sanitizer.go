package assistant

import (
	"regexp"
	"strings"
)

// MaxQueryLen is the hard cap a query is truncated to before any
// classification runs.
const MaxQueryLen = 500

var (
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>?`)
	jsSchemePattern  = regexp.MustCompile(`(?i)javascript:`)
	eventAttrPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Sanitize strips markup-like substrings and bounds the length. Pure
// function; every downstream stage sees only its output.
func Sanitize(raw string) string {
	clean := htmlTagPattern.ReplaceAllString(raw, "")
	clean = jsSchemePattern.ReplaceAllString(clean, "")
	clean = eventAttrPattern.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	return truncateRunes(clean, MaxQueryLen)
}

// truncateRunes cuts at a rune boundary so multibyte input can never be
// split into invalid UTF-8. The limit counts characters, not bytes.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
