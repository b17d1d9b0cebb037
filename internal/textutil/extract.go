package textutil

import "strings"

// ExtractJSONObject returns the first balanced {...} substring of s.
// The model wraps structured answers in conversational text, so the caller
// must always have a fallback for the not-found case.
func ExtractJSONObject(s string) (string, bool) {
	return extractBalanced(s, '{', '}')
}

// ExtractJSONArray returns the first balanced [...] substring of s.
func ExtractJSONArray(s string) (string, bool) {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, closing byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
