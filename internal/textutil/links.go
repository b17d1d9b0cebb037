package textutil

import "regexp"

var (
	// bareHeaderLinkRe matches a level-3 header whose text is followed by a
	// bare parenthesized URL instead of a markdown link, e.g.
	// "### Product Name(https://example.com)".
	bareHeaderLinkRe = regexp.MustCompile(`(?m)^###\s+([^([]+)\((https?://[^)]+)\)`)

	// splitLinkRe matches a closing bracket separated from its opening
	// paren, e.g. "[Name] (URL)".
	splitLinkRe = regexp.MustCompile(`\]\s+\(`)
)

// RepairMarkdownLinks fixes the two malformed link shapes the text model
// produces in article bodies: headers with bare parenthesized URLs, and
// whitespace between a link's label and its URL.
func RepairMarkdownLinks(text string) string {
	text = bareHeaderLinkRe.ReplaceAllString(text, "### [$1]($2)")
	return splitLinkRe.ReplaceAllString(text, "](")
}
