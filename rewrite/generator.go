package rewrite

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdbg/context"
	"github.com/gogpu/shaderdbg/glslparse"
)

const mainImageName = "mainImage"

// Generate rewrites source so that execution ends with the value of
// the expression on debugLine visualized into fragColor. content is
// the caller's recollection of the debug line's text, used to detect
// a source that has drifted out from under a stale line number. ok is
// false when the line is not a debuggable statement (a bare
// expression or comparison with no assignment), or content no longer
// matches the actual line.
func Generate(source string, debugLine int, content string, customParams map[int]string, loopCaps map[int]int) (string, bool) {
	if debugLine < 1 {
		return "", false
	}
	module, _ := glslparse.Parse(source)
	lines := strings.Split(source, "\n")
	if debugLine > len(lines) {
		return "", false
	}
	if !lineContentMatches(lines[debugLine-1], content) {
		return "", false
	}

	fn := module.FindFunction(debugLine)

	stmt, stmtEndLine := extractStatement(lines, debugLine)
	cat, v := classify(stmt)
	if cat == categoryNotDebuggable {
		return "", false
	}

	vtype, ok := resolveType(lines, fn, debugLine, cat, v, stmt)
	if !ok {
		return "", false
	}

	var loops []*glslparse.LoopInfo
	if fn != nil {
		loops = module.LoopsEnclosing(debugLine, fn)
	}

	var out []string
	switch {
	case fn == nil:
		out = generateGlobalScope(lines, debugLine, v, vtype)
	case fn.Name == mainImageName:
		out = generateMainImage(lines, fn, debugLine, stmtEndLine, v, vtype, loops)
	default:
		out = generateHelper(lines, fn, debugLine, stmtEndLine, v, vtype, cat, loops, customParams)
	}

	out = applyLoopCaps(out, module, loopCaps)
	return strings.Join(out, "\n"), true
}

// extractStatement joins lines forward from debugLine, tracking paren
// depth, until it finds a ';' at depth zero. Most debug lines are a
// single physical line and this returns immediately; multi-line
// expressions are joined so classify/resolveType see the whole
// statement.
func extractStatement(lines []string, debugLine int) (string, int) {
	end := debugLine
	depth := 0
	for i := debugLine; i <= len(lines); i++ {
		line := lines[i-1]
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		end = i
		if strings.Contains(line, ";") && depth <= 0 {
			break
		}
	}
	return strings.Join(lines[debugLine-1:end], "\n"), end
}

// generateGlobalScope implements the global-scope debug rule: keep
// every line up to and including the debug declaration, drop
// everything after it, and append a synthesized mainImage that
// visualizes the global.
func generateGlobalScope(lines []string, debugLine int, v, vtype string) []string {
	out := append([]string{}, lines[:debugLine]...)
	out = append(out, "")
	out = append(out, "void mainImage(out vec4 fragColor, in vec2 fragCoord) {")
	out = append(out, "    "+visualizationStatement(vtype, v))
	out = append(out, "}")
	return out
}

// generateMainImage rewrites mainImage itself: truncate its body right
// after the debug statement and assign fragColor from the debugged
// value. When the debug line sits inside one or more loops, a shadow
// variable is declared before the outermost enclosing loop, assigned
// immediately after the debug statement, and visualized once the loop
// exits, so the loop still has to run to completion.
func generateMainImage(lines []string, fn *glslparse.FunctionInfo, debugLine, stmtEndLine int, v, vtype string, loops []*glslparse.LoopInfo) []string {
	indent := leadingWhitespace(lines[debugLine-1])

	out := append([]string{}, lines[:fn.BodyStartLine]...)

	if len(loops) == 0 {
		out = append(out, lines[fn.BodyStartLine:stmtEndLine]...)
		out = append(out, indent+visualizationStatement(vtype, v))
		out = append(out, "}")
		return out
	}

	outer := loops[0]
	shadowIndent := leadingWhitespace(lines[outer.LineNumber-1])

	out = append(out, lines[fn.BodyStartLine:outer.LineNumber-1]...)
	out = append(out, shadowIndent+fmt.Sprintf("%s _dbgShadow;", vtype))
	out = append(out, lines[outer.LineNumber-1:stmtEndLine]...)
	out = append(out, indent+fmt.Sprintf("_dbgShadow = %s;", v))
	out = append(out, lines[stmtEndLine:outer.EndLine]...)
	out = append(out, shadowIndent+visualizationStatement(vtype, "_dbgShadow"))
	out = append(out, "}")
	return out
}

// generateHelper rewrites a non-mainImage function to return the
// debugged value (via a shadow variable if the debug line is inside a
// loop), rewriting the function's return type if the debugged value's
// type differs from its declared one, then binds mainImage's call
// site: rewriting it in place if mainImage already calls the helper,
// or else synthesizing a default call.
func generateHelper(lines []string, fn *glslparse.FunctionInfo, debugLine, stmtEndLine int, v, vtype string, cat category, loops []*glslparse.LoopInfo, customParams map[int]string) []string {
	indent := leadingWhitespace(lines[debugLine-1])

	newReturnType := fn.ReturnType
	if cat != categoryReturn && vtype != fn.ReturnType {
		newReturnType = vtype
	}

	newHeader := fn.SignatureText
	if newReturnType != fn.ReturnType {
		newHeader = newReturnType + strings.TrimPrefix(fn.SignatureText, fn.ReturnType)
	}

	var body []string
	switch {
	case cat == categoryReturn && len(loops) == 0:
		rewritten := rewriteReturnToAssignment(lines[debugLine-1], newReturnType)
		body = append(body, lines[fn.BodyStartLine:debugLine-1]...)
		body = append(body, rewritten)
		body = append(body, indent+"return _dbgReturn;")

	case cat == categoryReturn:
		outer := loops[0]
		shadowIndent := leadingWhitespace(lines[outer.LineNumber-1])
		rewritten := rewriteReturnToAssignment(lines[debugLine-1], newReturnType)
		body = append(body, lines[fn.BodyStartLine:outer.LineNumber-1]...)
		body = append(body, shadowIndent+fmt.Sprintf("%s _dbgShadow;", newReturnType))
		body = append(body, lines[outer.LineNumber-1:debugLine-1]...)
		body = append(body, rewritten)
		body = append(body, indent+"_dbgShadow = _dbgReturn;")
		body = append(body, lines[debugLine:outer.EndLine]...)
		body = append(body, shadowIndent+"return _dbgShadow;")

	case len(loops) == 0:
		body = append(body, lines[fn.BodyStartLine:stmtEndLine]...)
		body = append(body, indent+fmt.Sprintf("return %s;", v))

	default:
		outer := loops[0]
		shadowIndent := leadingWhitespace(lines[outer.LineNumber-1])
		body = append(body, lines[fn.BodyStartLine:outer.LineNumber-1]...)
		body = append(body, shadowIndent+fmt.Sprintf("%s _dbgShadow;", vtype))
		body = append(body, lines[outer.LineNumber-1:stmtEndLine]...)
		body = append(body, indent+fmt.Sprintf("_dbgShadow = %s;", v))
		body = append(body, lines[stmtEndLine:outer.EndLine]...)
		body = append(body, shadowIndent+"return _dbgShadow;")
	}

	newFn := append([]string{newHeader + " {"}, body...)
	newFn = append(newFn, "}")

	out := spliceFunction(lines, fn, newFn)
	return rewriteMainImageCallSite(out, fn.Name, vtype, fn.Parameters, customParams)
}

func rewriteReturnToAssignment(line, rettype string) string {
	indent := leadingWhitespace(line)
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "return")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, ";")
	return fmt.Sprintf("%s%s _dbgReturn = %s;", indent, rettype, trimmed)
}

// spliceFunction replaces fn's original span in lines with newFn,
// leaving everything else untouched.
func spliceFunction(lines []string, fn *glslparse.FunctionInfo, newFn []string) []string {
	var out []string
	out = append(out, lines[:fn.StartLine-1]...)
	out = append(out, newFn...)
	out = append(out, lines[fn.EndLine:]...)
	return out
}

// rewriteMainImageCallSite re-parses outLines (whose line numbers may
// have shifted after splicing a helper's rewritten body) to locate
// mainImage accurately, then either rewrites an existing call to
// helperName into a visualized result, or, if mainImage never calls
// helperName, synthesizes one from default/override argument values.
func rewriteMainImageCallSite(outLines []string, helperName, vtype string, helperParams []glslparse.Parameter, customParams map[int]string) []string {
	module, _ := glslparse.Parse(strings.Join(outLines, "\n"))
	main := module.FunctionByName(mainImageName)
	if main == nil {
		return outLines
	}

	var newBody []string
	if callLine, args, found := findCallSite(outLines, main, helperName); found {
		indent := leadingWhitespace(outLines[callLine-1])
		newBody = append(newBody, outLines[main.BodyStartLine:callLine-1]...)
		newBody = append(newBody, indent+fmt.Sprintf("%s result = %s(%s);", vtype, helperName, args))
		newBody = append(newBody, indent+visualizationStatement(vtype, "result"))
	} else {
		indent := "    "
		args := defaultArgs(helperParams, customParams)
		newBody = append(newBody, indent+fmt.Sprintf("%s result = %s(%s);", vtype, helperName, strings.Join(args, ", ")))
		newBody = append(newBody, indent+visualizationStatement(vtype, "result"))
	}

	newMain := append([]string{}, outLines[main.StartLine-1:main.BodyStartLine]...)
	newMain = append(newMain, newBody...)
	newMain = append(newMain, "}")

	final := append([]string{}, outLines[:main.StartLine-1]...)
	final = append(final, newMain...)
	final = append(final, outLines[main.EndLine:]...)
	return final
}

func defaultArgs(params []glslparse.Parameter, customParams map[int]string) []string {
	args := make([]string, len(params))
	for i, p := range params {
		if v, ok := customParams[i]; ok {
			args[i] = v
			continue
		}
		args[i] = context.DefaultCustomValue(p.Type)
	}
	return args
}

// findCallSite looks for a call to name inside fn's body (a single
// physical line), returning the 1-based line number and the verbatim
// argument text.
func findCallSite(lines []string, fn *glslparse.FunctionInfo, name string) (int, string, bool) {
	for ln := fn.BodyStartLine + 1; ln <= fn.EndLine-1; ln++ {
		line := lines[ln-1]
		idx := indexCall(line, name)
		if idx < 0 {
			continue
		}
		open := strings.Index(line[idx:], "(") + idx
		depth := 0
		end := -1
		for i := open; i < len(line); i++ {
			switch line[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			continue
		}
		return ln, line[open+1 : end], true
	}
	return 0, "", false
}

// indexCall finds name as a whole identifier immediately followed
// (ignoring whitespace) by '(', or -1.
func indexCall(line, name string) int {
	start := 0
	for {
		idx := strings.Index(line[start:], name)
		if idx < 0 {
			return -1
		}
		abs := start + idx
		before := byte(' ')
		if abs > 0 {
			before = line[abs-1]
		}
		if !isIdentByte(before) {
			rest := strings.TrimLeft(line[abs+len(name):], " \t")
			if strings.HasPrefix(rest, "(") {
				return abs
			}
		}
		start = abs + len(name)
	}
}
