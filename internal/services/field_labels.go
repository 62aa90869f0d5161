package services

import (
	"strings"
	"unicode"
)

// HumanizeFieldKey turns "avgTicketSize", "avg_ticket_size" or "avg-ticket-size"
// into "Avg Ticket Size".
func HumanizeFieldKey(key string) string {
	words := splitFieldKey(key)
	for index, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[index] = string(runes)
	}
	return strings.Join(words, " ")
}

func splitFieldKey(key string) []string {
	words := []string{}
	current := []rune{}
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(strings.TrimSpace(key))
	for index, char := range runes {
		switch {
		case char == '_' || char == '-' || unicode.IsSpace(char):
			flush()
		case unicode.IsUpper(char):
			previousLower := index > 0 && (unicode.IsLower(runes[index-1]) || unicode.IsDigit(runes[index-1]))
			acronymEnd := index > 0 && unicode.IsUpper(runes[index-1]) && index+1 < len(runes) && unicode.IsLower(runes[index+1])
			if previousLower || acronymEnd {
				flush()
			}
			current = append(current, char)
		default:
			current = append(current, char)
		}
	}
	flush()
	return words
}
