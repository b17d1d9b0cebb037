// Package textutil holds the pure text transformations that normalize the
// free-text output of the generative model into structured article fields.
package textutil

import (
	"regexp"
	"strings"
)

// preambleRe matches one leading conversational preamble up to and including
// the next colon, e.g. "Sure, here's your headline:".
var preambleRe = regexp.MustCompile(`(?i)^(here is|based on|sure|according to|i have|suggested title).*?:`)

// tagCharRe matches every character outside alphanumerics and spaces.
var tagCharRe = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// Clean strips a single leading conversational preamble from model output
// and trims surrounding whitespace. Input without a preamble passes through
// unchanged.
func Clean(text string) string {
	return strings.TrimSpace(preambleRe.ReplaceAllString(text, ""))
}

// SanitizeTag reduces a tag to alphanumerics and spaces, trimmed.
func SanitizeTag(tag string) string {
	return strings.TrimSpace(tagCharRe.ReplaceAllString(tag, ""))
}

// Truncate returns at most max runes of s.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
