package markup

import "strings"

// ReservedChars are the characters Telegram's MarkdownV2 renderer treats as
// markup and rejects when they appear unescaped in ordinary text.
const ReservedChars = "_*[]()~`>#+-=|{}.!"

var escaper = buildEscaper()

func buildEscaper() *strings.Replacer {
	pairs := make([]string, 0, len(ReservedChars)*2)
	for _, c := range ReservedChars {
		pairs = append(pairs, string(c), `\`+string(c))
	}
	return strings.NewReplacer(pairs...)
}

// EscapeMarkdownV2 prefixes every reserved MarkdownV2 character with a
// backslash and leaves all other characters untouched. Call it exactly once
// per rendered string; it does not detect already-escaped input.
func EscapeMarkdownV2(text string) string {
	return escaper.Replace(text)
}
