package glslparse

import (
	"strings"

	"github.com/gogpu/shaderdbg/token"
)

// spanText reconstructs the verbatim source text spanning from the
// start of from to the end of to (inclusive), across however many
// source lines that covers. Tokens never span multiple lines (block
// comments and preprocessor lines are filtered out of the structural
// token stream before this is called), so each token's extent on its
// own line is Column .. Column+len(Lexeme).
func spanText(lines []string, from, to token.Token) string {
	if from.Line == to.Line {
		line := safeLine(lines, from.Line)
		start := clamp(from.Column-1, 0, len(line))
		end := clamp(to.Column-1+len(to.Lexeme), start, len(line))
		return line[start:end]
	}

	var sb strings.Builder
	first := safeLine(lines, from.Line)
	start := clamp(from.Column-1, 0, len(first))
	sb.WriteString(first[start:])

	for ln := from.Line + 1; ln < to.Line; ln++ {
		sb.WriteByte('\n')
		sb.WriteString(safeLine(lines, ln))
	}

	sb.WriteByte('\n')
	last := safeLine(lines, to.Line)
	end := clamp(to.Column-1+len(to.Lexeme), 0, len(last))
	sb.WriteString(last[:end])

	return sb.String()
}

func safeLine(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
