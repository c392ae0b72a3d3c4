package util

// TrimString truncates s to at most length characters. Counting runes rather
// than bytes keeps accented names from being cut mid-sequence.
func TrimString(s string, length int) string {
	if length <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}
