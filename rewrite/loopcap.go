package rewrite

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdbg/glslparse"
)

// applyLoopCaps finds each capped loop by its verbatim header text
// (loop identity survives the earlier rewrite passes even though line
// numbers don't) and inserts an iteration counter before the loop and
// a break check as the first statement of its body. A loop whose
// header no longer appears in the output (it was truncated away by
// the debug rewrite) is silently skipped.
func applyLoopCaps(lines []string, module *glslparse.Module, loopCaps map[int]int) []string {
	if len(loopCaps) == 0 {
		return lines
	}
	out := append([]string{}, lines...)
	for idx, limit := range loopCaps {
		lp := findLoop(module, idx)
		if lp == nil || lp.LoopHeader == "" {
			continue
		}
		headerLine := -1
		for i, line := range out {
			if strings.Contains(line, lp.LoopHeader) {
				headerLine = i
				break
			}
		}
		if headerLine < 0 {
			continue
		}
		indent := leadingWhitespace(out[headerLine])
		out = insertAt(out, headerLine, indent+fmt.Sprintf("int _dbgIter%d = 0;", idx))

		braceLine := headerLine + 1
		for braceLine < len(out) && !strings.Contains(out[braceLine], "{") {
			braceLine++
		}
		if braceLine >= len(out) {
			continue
		}
		bodyIndent := indent + "    "
		out = insertAt(out, braceLine+1, bodyIndent+fmt.Sprintf("if (++_dbgIter%d > %d) break;", idx, limit))
	}
	return out
}

func findLoop(module *glslparse.Module, idx int) *glslparse.LoopInfo {
	for _, lp := range module.Loops {
		if lp.LoopIndex == idx {
			return lp
		}
	}
	return nil
}
