package textutil

import "testing"

func TestClean_StripsPreamble(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"here is", "Here is your headline: Mind-Blowing Gadgets", "Mind-Blowing Gadgets"},
		{"sure", "Sure, I can help with that: The Real Answer", "The Real Answer"},
		{"based on", "Based on your request: Content body here", "Content body here"},
		{"suggested title", "Suggested title: Ten Cool Finds", "Ten Cool Finds"},
		{"case insensitive", "HERE IS THE TEXT: payload", "payload"},
		{"trims whitespace", "  plain text  ", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_IdentityWithoutPreamble(t *testing.T) {
	input := "Mind-Blowing Gadgets"
	if got := Clean(input); got != input {
		t.Errorf("Clean(%q) = %q, want unchanged input", input, got)
	}
}

func TestClean_RemovesOnlyOnePrefix(t *testing.T) {
	// A colon later in the text must survive.
	input := "Here is the title: Gadgets: A Love Story"
	want := "Gadgets: A Love Story"
	if got := Clean(input); got != want {
		t.Errorf("Clean(%q) = %q, want %q", input, got, want)
	}
}

func TestSanitizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#coolfinds!", "coolfinds"},
		{"smart home", "smart home"},
		{"deal$ & discounts", "deal  discounts"},
	}

	for _, tt := range tests {
		if got := SanitizeTag(tt.input); got != tt.want {
			t.Errorf("SanitizeTag(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Errorf("Truncate = %q, want %q", got, "abcd")
	}
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate should not pad, got %q", got)
	}
}
