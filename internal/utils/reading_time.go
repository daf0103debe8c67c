package utils

import (
	"strings"
	"unicode"
)

const wordsPerMinute = 200

// ReadingTimeMinutes estimates reading time for a markdown body.
// Always at least one minute.
func ReadingTimeMinutes(markdown string) int {
	words := CountWords(markdown)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// CountWords counts the number of words in a markdown string
func CountWords(markdown string) int {
	// Remove markdown syntax for more accurate word count
	text := cleanMarkdown(markdown)

	words := strings.FieldsFunc(text, unicode.IsSpace)

	count := 0
	for _, word := range words {
		if len(strings.TrimSpace(word)) > 0 {
			count++
		}
	}

	return count
}

func cleanMarkdown(markdown string) string {
	text := removeCodeBlocks(markdown)

	// Remove inline code and emphasis markers
	text = strings.ReplaceAll(text, "`", "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "_", "")
	text = strings.ReplaceAll(text, "~~", "")

	// Remove heading markers
	text = strings.ReplaceAll(text, "#", "")

	// Remove list markers
	lines := strings.Split(text, "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimPrefix(line, "- ")
		} else if strings.HasPrefix(line, "* ") {
			line = strings.TrimPrefix(line, "* ")
		}
		// Remove numbered list markers (e.g., "1. ", "2. ")
		if len(line) > 2 && unicode.IsDigit(rune(line[0])) && line[1] == '.' {
			line = line[2:]
		}
		cleanedLines = append(cleanedLines, line)
	}
	text = strings.Join(cleanedLines, " ")

	// Remove blockquote markers and horizontal rules
	text = strings.ReplaceAll(text, ">", "")
	text = strings.ReplaceAll(text, "---", "")

	return text
}

func removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text[:start]
		}
		text = text[:start] + text[start+3+end+3:]
	}
}
