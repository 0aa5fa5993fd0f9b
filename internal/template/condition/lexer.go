package condition

import "unicode"

// tokenKind identifies a lexical token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenBool
	tokenEq
	tokenAnd
	tokenOr
	tokenBad
)

// token is one lexical token.
type token struct {
	kind tokenKind
	text string
}

// lexer scans condition expressions.
type lexer struct {
	input []rune
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// scan returns the next token.
func (l *lexer) scan() token {
	for l.pos < len(l.input) && unicode.IsSpace(l.peek()) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF}
	}

	ch := l.peek()
	switch {
	case ch == '&':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '&' {
			l.pos += 2
			return token{kind: tokenAnd, text: "&&"}
		}
		l.pos++
		return token{kind: tokenBad, text: "&"}

	case ch == '|':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '|' {
			l.pos += 2
			return token{kind: tokenOr, text: "||"}
		}
		l.pos++
		return token{kind: tokenBad, text: "|"}

	case ch == '=':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokenEq, text: "=="}
		}
		l.pos++
		return token{kind: tokenBad, text: "="}

	case ch == '\'':
		return l.scanString()

	case ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch):
		return l.scanIdent()

	default:
		l.pos++
		return token{kind: tokenBad, text: string(ch)}
	}
}

// scanString scans a single-quoted literal. An unterminated literal is a bad
// token, which fails the clause closed.
func (l *lexer) scanString() token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) && l.input[l.pos] != '\'' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokenBad, text: string(l.input[start:])}
	}
	text := string(l.input[start+1 : l.pos])
	l.pos++ // closing quote
	return token{kind: tokenString, text: text}
}

// scanIdent scans an identifier or the boolean literals true/false.
func (l *lexer) scanIdent() token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			l.pos++
			continue
		}
		break
	}
	text := string(l.input[start:l.pos])
	if text == "true" || text == "false" {
		return token{kind: tokenBool, text: text}
	}
	return token{kind: tokenIdent, text: text}
}
