package textutil

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateReadTime renders the estimated reading duration of text as
// "N min read". The estimate is never below one minute, so an empty body
// still reads as "1 min read".
func EstimateReadTime(text string) string {
	minutes := (WordCount(text) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
