package utils

import (
	"strings"
	"testing"
)

func TestReadingTimeMinutes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", 1},
		{"short post", "just a handful of words here", 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over one minute", strings.Repeat("word ", 201), 2},
		{"three minutes", strings.Repeat("word ", 550), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTimeMinutes(tt.body); got != tt.want {
				t.Errorf("ReadingTimeMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"plain text", "one two three", 3},
		{"emphasis stripped", "this is **bold** and *italic*", 5},
		{"headings stripped", "# Title\n\nsome body text", 4},
		{"code block excluded", "before\n```\ncode inside block\n```\nafter", 2},
		{"inline code kept as words", "run `go test` now", 4},
		{"list markers stripped", "- first item\n- second item", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.markdown); got != tt.want {
				t.Errorf("CountWords = %d, want %d", got, tt.want)
			}
		})
	}
}
