package preprocess

import "strings"

// NormalizeWhitespace collapses every whitespace run (including newlines)
// into a single space and trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// RemoveTimestamps strips both inline marker notations and normalizes the
// remaining whitespace.
func RemoveTimestamps(text string) string {
	clean := srtTimestampPattern.ReplaceAllString(text, " ")
	clean = timestampPattern.ReplaceAllString(clean, " ")
	return NormalizeWhitespace(clean)
}
