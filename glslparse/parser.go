package glslparse

import (
	"strings"

	"github.com/gogpu/shaderdbg/lexer"
	"github.com/gogpu/shaderdbg/token"
)

// Parser extracts FunctionInfo/LoopInfo facts from GLSL source with a
// single brace-depth-tracking scan over tokens. It never fails
// outright on malformed input: on unbalanced braces it conservatively
// treats the remainder of the file as the current body and still
// returns best-effort facts, recording diagnostics in Errors.
type Parser struct {
	source string
	lines  []string
	toks   []token.Token // structural tokens: comments/newlines/preprocessor stripped
	errs   ErrorList
}

// New creates a parser for source.
func New(source string) *Parser {
	all := lexer.New(source).Tokenize()
	toks := make([]token.Token, 0, len(all))
	for _, t := range all {
		switch t.Kind {
		case token.Comment, token.Newline, token.Preprocessor:
			continue
		}
		toks = append(toks, t)
	}
	return &Parser{
		source: source,
		lines:  strings.Split(source, "\n"),
		toks:   toks,
	}
}

// Parse runs the Parser and returns the extracted Module plus any
// best-effort diagnostics gathered along the way.
func Parse(source string) (*Module, ErrorList) {
	p := New(source)
	return p.parse(), p.errs
}

func (p *Parser) parse() *Module {
	m := &Module{Source: p.source}
	depth := 0
	loopIndex := 0
	i := 0

	for i < len(p.toks) {
		t := p.toks[i]
		if t.Kind == token.EOF {
			break
		}

		if depth == 0 && p.looksLikeFunctionHeader(i) {
			fn, bodyOpen, bodyClose, next, ok := p.parseFunction(i)
			if ok {
				m.Functions = append(m.Functions, fn)
				if bodyOpen >= 0 {
					p.scanForLoops(m, bodyOpen, bodyClose, &loopIndex)
				}
				i = next
				continue
			}
		}

		if t.Kind == token.Keyword && (t.Lexeme == "for" || t.Lexeme == "while") {
			loop, bodyOpen, bodyClose, next := p.parseLoopHeader(i, loopIndex)
			loopIndex++
			m.Loops = append(m.Loops, loop)
			if bodyOpen >= 0 {
				p.scanForLoops(m, bodyOpen+1, bodyClose-1, &loopIndex)
			}
			i = next
			continue
		}

		if isPunct(t, "{") {
			depth++
		} else if isPunct(t, "}") {
			if depth > 0 {
				depth--
			}
		}
		i++
	}

	p.linkCalls(m)
	return m
}

// looksLikeFunctionHeader checks for "<type-or-ident> <ident> (" at i.
func (p *Parser) looksLikeFunctionHeader(i int) bool {
	if i+2 >= len(p.toks) {
		return false
	}
	typeTok := p.toks[i]
	nameTok := p.toks[i+1]
	parenTok := p.toks[i+2]
	if typeTok.Kind != token.Type && typeTok.Kind != token.Ident {
		return false
	}
	if nameTok.Kind != token.Ident {
		return false
	}
	return isPunct(parenTok, "(")
}

// parseFunction parses a function header+body starting at token index
// i (which must satisfy looksLikeFunctionHeader). Returns the token
// indices spanning the body's braces (bodyOpen, bodyClose) so the
// caller can scan the body for nested loops, plus the index just past
// the function's closing brace to resume top-level scanning at. ok is
// false if this is a forward declaration ("...);") rather than a
// definition, in which case the caller should continue scanning
// without consuming it as a function.
func (p *Parser) parseFunction(i int) (fn *FunctionInfo, bodyOpen, bodyClose, next int, ok bool) {
	typeTok := p.toks[i]
	nameTok := p.toks[i+1]
	openParen := i + 2

	closeParen := p.matchParen(openParen)
	if closeParen < 0 {
		p.errs.Add("unterminated parameter list", typeTok.Line, typeTok.Column)
		return nil, -1, -1, i + 1, false
	}

	afterParams := closeParen + 1
	if afterParams >= len(p.toks) || !isPunct(p.toks[afterParams], "{") {
		// Prototype, not a definition.
		return nil, -1, -1, i + 1, false
	}
	openBrace := afterParams

	closeBrace := p.matchBrace(openBrace)
	if closeBrace < 0 {
		p.errs.Add("unbalanced braces in function body; treating rest of file as body", typeTok.Line, typeTok.Column)
		closeBrace = len(p.toks) - 1
	}

	fn = &FunctionInfo{
		Name:          nameTok.Lexeme,
		ReturnType:    typeTok.Lexeme,
		Parameters:    p.parseParameters(openParen, closeParen),
		StartLine:     typeTok.Line,
		BodyStartLine: p.toks[openBrace].Line,
		EndLine:       p.toks[closeBrace].Line,
		SignatureText: spanText(p.lines, typeTok, p.toks[closeParen]),
	}

	fn.Calls = p.collectCalls(openBrace, closeBrace, fn.Name)

	return fn, openBrace, closeBrace, closeBrace + 1, true
}

// parseParameters splits the token range (open, close) exclusive on
// top-level commas and classifies each fragment.
func (p *Parser) parseParameters(open, close int) []Parameter {
	var params []Parameter
	var frag []token.Token
	depth := 0

	flush := func() {
		if len(frag) == 0 {
			return
		}
		params = append(params, classifyParameter(frag))
		frag = nil
	}

	for idx := open + 1; idx < close; idx++ {
		t := p.toks[idx]
		switch {
		case isPunct(t, "(") || isPunct(t, "["):
			depth++
		case isPunct(t, ")") || isPunct(t, "]"):
			depth--
		case isPunct(t, ",") && depth == 0:
			flush()
			continue
		}
		frag = append(frag, t)
	}
	flush()

	return params
}

func classifyParameter(frag []token.Token) Parameter {
	var p Parameter
	start := 0

	if len(frag) > 0 && frag[0].Kind == token.Keyword {
		switch frag[0].Lexeme {
		case "in":
			p.Qualifier = QualifierIn
			start = 1
		case "out":
			p.Qualifier = QualifierOut
			start = 1
		case "inout":
			p.Qualifier = QualifierInout
			start = 1
		case "const":
			start = 1
		}
	}

	rest := frag[start:]
	if len(rest) == 0 {
		return p
	}

	// Name is the last identifier before any trailing "[N]" array suffix.
	nameIdx := -1
	for idx := len(rest) - 1; idx >= 0; idx-- {
		if rest[idx].Kind == token.Ident {
			nameIdx = idx
			break
		}
		if isPunct(rest[idx], "]") {
			continue
		}
		if rest[idx].Kind == token.Number || isPunct(rest[idx], "[") {
			continue
		}
		break
	}
	if nameIdx < 0 {
		// No usable name; treat entire fragment as the type.
		var sb strings.Builder
		for i, t := range rest {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.Lexeme)
		}
		p.Type = sb.String()
		return p
	}

	p.Name = rest[nameIdx].Lexeme
	var sb strings.Builder
	for i := 0; i < nameIdx; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(rest[i].Lexeme)
	}
	p.Type = sb.String()
	return p
}

// parseLoopHeader parses a for/while loop starting at the keyword
// token i. It returns the loop's facts, the token indices spanning its
// brace body (bodyOpen, bodyClose; both -1 for a single-statement body
// with no braces), and the index to resume scanning at after the
// whole loop.
func (p *Parser) parseLoopHeader(i int, loopIndex int) (loop *LoopInfo, bodyOpen, bodyClose, next int) {
	kw := p.toks[i]
	loop = &LoopInfo{LoopIndex: loopIndex, LineNumber: kw.Line}

	openParen := i + 1
	if openParen >= len(p.toks) || !isPunct(p.toks[openParen], "(") {
		// Malformed; treat the keyword line alone as the loop.
		loop.EndLine = kw.Line
		return loop, -1, -1, i + 1
	}
	closeParen := p.matchParen(openParen)
	if closeParen < 0 {
		loop.EndLine = kw.Line
		p.errs.Add("unterminated loop header", kw.Line, kw.Column)
		return loop, -1, -1, openParen + 1
	}
	loop.LoopHeader = spanText(p.lines, p.toks[openParen], p.toks[closeParen])

	afterHeader := closeParen + 1
	if afterHeader < len(p.toks) && isPunct(p.toks[afterHeader], "{") {
		closeBrace := p.matchBrace(afterHeader)
		if closeBrace < 0 {
			closeBrace = len(p.toks) - 1
		}
		loop.EndLine = p.toks[closeBrace].Line
		return loop, afterHeader, closeBrace, closeBrace + 1
	}

	// Single-statement body, terminated by ';'.
	idx := afterHeader
	for idx < len(p.toks) && !isPunct(p.toks[idx], ";") {
		idx++
	}
	if idx >= len(p.toks) {
		idx = len(p.toks) - 1
	}
	loop.EndLine = p.toks[idx].Line
	return loop, -1, -1, idx + 1
}

// scanForLoops records every for/while loop in the token range
// [start, end], recursing into each loop's own body so loops nested at
// any depth (inside a function, inside another loop, inside both) are
// still visited, all in source order.
func (p *Parser) scanForLoops(m *Module, start, end int, loopIndex *int) {
	i := start
	for i <= end && i < len(p.toks) {
		t := p.toks[i]
		if t.Kind == token.Keyword && (t.Lexeme == "for" || t.Lexeme == "while") {
			loop, bodyOpen, bodyClose, next := p.parseLoopHeader(i, *loopIndex)
			m.Loops = append(m.Loops, loop)
			*loopIndex++
			if bodyOpen >= 0 {
				p.scanForLoops(m, bodyOpen+1, bodyClose-1, loopIndex)
			}
			i = next
			continue
		}
		i++
	}
}

// matchParen returns the index of the ')' matching the '(' at open,
// or -1 if unbalanced.
func (p *Parser) matchParen(open int) int {
	depth := 0
	for idx := open; idx < len(p.toks); idx++ {
		if isPunct(p.toks[idx], "(") {
			depth++
		} else if isPunct(p.toks[idx], ")") {
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

// matchBrace returns the index of the '}' matching the '{' at open,
// or -1 if unbalanced.
func (p *Parser) matchBrace(open int) int {
	depth := 0
	for idx := open; idx < len(p.toks); idx++ {
		if isPunct(p.toks[idx], "{") {
			depth++
		} else if isPunct(p.toks[idx], "}") {
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

// collectCalls scans [open, close] for "ident (" call sites, deduped
// and in source order, excluding self-recursive calls to ownName (the
// call graph is used for inclusion of *other* helpers).
func (p *Parser) collectCalls(open, close int, ownName string) []string {
	seen := map[string]bool{}
	var calls []string
	for idx := open; idx < close; idx++ {
		t := p.toks[idx]
		if t.Kind != token.Ident {
			continue
		}
		if idx+1 >= len(p.toks) || !isPunct(p.toks[idx+1], "(") {
			continue
		}
		if t.Lexeme == ownName || seen[t.Lexeme] {
			continue
		}
		seen[t.Lexeme] = true
		calls = append(calls, t.Lexeme)
	}
	return calls
}

// linkCalls filters each function's recorded call names down to those
// that are actually user-defined functions in this module (as opposed
// to GLSL builtins like length, normalize, texture).
func (p *Parser) linkCalls(m *Module) {
	known := map[string]bool{}
	for _, fn := range m.Functions {
		known[fn.Name] = true
	}
	for _, fn := range m.Functions {
		filtered := fn.Calls[:0]
		for _, c := range fn.Calls {
			if known[c] {
				filtered = append(filtered, c)
			}
		}
		fn.Calls = filtered
	}
}

func isPunct(t token.Token, lexeme string) bool {
	return t.Kind == token.Punct && t.Lexeme == lexeme
}
