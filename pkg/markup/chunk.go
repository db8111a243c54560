package markup

// Chunk splits s into consecutive pieces of at most limit characters each.
// Every piece except the last is exactly limit characters long and the pieces
// concatenate back to s. Boundaries are purely positional: a split may land
// mid-word or mid-escape-sequence. Empty input yields a single empty chunk so
// callers always have at least one message to send.
func Chunk(s string, limit int) []string {
	if limit <= 0 {
		return []string{s}
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return []string{s}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(chunks, string(runes))
}
