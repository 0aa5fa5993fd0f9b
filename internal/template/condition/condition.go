// Package condition parses and evaluates the small boolean expression
// language used by per-file inclusion conditions and validation groups:
//
//	integration == 'cmake'
//	minimal == false
//	integration == 'make' && minimal == false
//	integration == 'make' || integration == 'cmake'
//
// AND binds tighter than OR. Anything that does not match the grammar
// evaluates to false rather than erroring, so one malformed condition never
// aborts a whole run.
package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// Expr is a parsed condition expression.
type Expr interface {
	// Eval evaluates the expression against a render context. Identifiers
	// missing from the context evaluate their clause to false.
	Eval(ctx render.Context) bool
	// Lower renders the expression in the template engine's helper syntax,
	// e.g. "(and (eq integration 'cmake') (eq minimal false))".
	Lower() string
}

// orExpr is a disjunction.
type orExpr struct {
	left, right Expr
}

func (e orExpr) Eval(ctx render.Context) bool {
	return e.left.Eval(ctx) || e.right.Eval(ctx)
}

func (e orExpr) Lower() string {
	return fmt.Sprintf("(or %s %s)", e.left.Lower(), e.right.Lower())
}

// andExpr is a conjunction.
type andExpr struct {
	left, right Expr
}

func (e andExpr) Eval(ctx render.Context) bool {
	return e.left.Eval(ctx) && e.right.Eval(ctx)
}

func (e andExpr) Lower() string {
	return fmt.Sprintf("(and %s %s)", e.left.Lower(), e.right.Lower())
}

// eqString compares a context variable against a string literal.
type eqString struct {
	ident   string
	literal string
}

func (e eqString) Eval(ctx render.Context) bool {
	v, ok := ctx.String(e.ident)
	return ok && v == e.literal
}

func (e eqString) Lower() string {
	return fmt.Sprintf("(eq %s '%s')", e.ident, e.literal)
}

// eqBool compares a context variable against a boolean literal.
type eqBool struct {
	ident string
	value bool
}

func (e eqBool) Eval(ctx render.Context) bool {
	v, ok := ctx.String(e.ident)
	return ok && v == strconv.FormatBool(e.value)
}

func (e eqBool) Lower() string {
	return fmt.Sprintf("(eq %s %t)", e.ident, e.value)
}

// unknownExpr is a clause that did not match the grammar. It always
// evaluates to false.
type unknownExpr struct {
	text string
}

func (e unknownExpr) Eval(render.Context) bool {
	return false
}

func (e unknownExpr) Lower() string {
	return "false"
}

// Parse parses a condition expression. Parse never fails: unrecognized
// clauses become Unknown nodes that evaluate to false.
func Parse(input string) Expr {
	p := &parser{lexer: newLexer(input)}
	p.next()
	expr := p.parseOr()
	if p.tok.kind != tokenEOF {
		// Trailing garbage taints the whole expression.
		debug.Debug("[condition] Trailing input at %q, expression fails closed", p.tok.text)
		return unknownExpr{text: input}
	}
	return expr
}

// Evaluate parses and evaluates a condition against the context in one step.
// Malformed expressions and missing identifiers evaluate to false.
func Evaluate(expr string, ctx render.Context) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	result := Parse(expr).Eval(ctx)
	debug.Debug("[condition] %q => %v", expr, result)
	return result
}

// parser is a recursive-descent parser with two precedence levels:
// or := and ("||" and)* ; and := atom ("&&" atom)*.
type parser struct {
	lexer *lexer
	tok   token
}

func (p *parser) next() {
	p.tok = p.lexer.scan()
}

func (p *parser) parseOr() Expr {
	left := p.parseAnd()
	for p.tok.kind == tokenOr {
		p.next()
		right := p.parseAnd()
		left = orExpr{left: left, right: right}
	}
	return left
}

func (p *parser) parseAnd() Expr {
	left := p.parseAtom()
	for p.tok.kind == tokenAnd {
		p.next()
		right := p.parseAtom()
		left = andExpr{left: left, right: right}
	}
	return left
}

// parseAtom parses "identifier == 'literal'" or "identifier == true/false".
// Any other clause form is consumed up to the next connective and becomes an
// Unknown node.
func (p *parser) parseAtom() Expr {
	if p.tok.kind != tokenIdent {
		return p.recoverAtom()
	}
	ident := p.tok.text
	p.next()

	if p.tok.kind != tokenEq {
		return p.recoverAtom()
	}
	p.next()

	switch p.tok.kind {
	case tokenString:
		lit := p.tok.text
		p.next()
		return eqString{ident: ident, literal: lit}
	case tokenBool:
		val := p.tok.text == "true"
		p.next()
		return eqBool{ident: ident, value: val}
	default:
		return p.recoverAtom()
	}
}

// recoverAtom skips tokens until the next connective so the rest of the
// expression still parses, and returns an Unknown node for the bad clause.
func (p *parser) recoverAtom() Expr {
	var skipped []string
	for p.tok.kind != tokenEOF && p.tok.kind != tokenAnd && p.tok.kind != tokenOr {
		skipped = append(skipped, p.tok.text)
		p.next()
	}
	text := strings.Join(skipped, " ")
	debug.Debug("[condition] Unrecognized clause %q, fails closed", text)
	return unknownExpr{text: text}
}
