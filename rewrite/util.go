package rewrite

import "strings"

// leadingWhitespace returns the run of spaces/tabs at the start of line.
func leadingWhitespace(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}

// lineContentMatches reports whether actual plausibly is the line the
// caller described as content. An empty content is treated as "not
// supplied" and always matches.
func lineContentMatches(actual, content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return true
	}
	return strings.Contains(actual, content) || strings.TrimSpace(actual) == content
}

func insertAt(lines []string, idx int, value string) []string {
	return insertManyAt(lines, idx, []string{value})
}

func insertManyAt(lines []string, idx int, values []string) []string {
	if idx < 0 {
		idx = 0
	}
	if idx > len(lines) {
		idx = len(lines)
	}
	out := make([]string, 0, len(lines)+len(values))
	out = append(out, lines[:idx]...)
	out = append(out, values...)
	out = append(out, lines[idx:]...)
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
