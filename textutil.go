package main

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

// truncateText shortens s to maxLen runes, marking the cut with an ellipsis.
func truncateText(s string, maxLen int) string {
	s = normalize(s)
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "…"
}
