package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"

	"github.com/dustin/go-humanize"
)

// Parser reads a token stream produced by the Lexer.
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// NewParser creates a new parser over input.
func NewParser(input string) *Parser {
	return &Parser{input: input, tokens: Tokenize(input)}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input), End: len(p.input)}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input), End: len(p.input)}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(tokType TokenType) (Token, error) {
	tok := p.current()
	if tok.Type == TokenError {
		return tok, p.errorf(tok, "unexpected %q", tok.Value)
	}
	if tok.Type != tokType {
		return tok, p.errorf(tok, "expected %v, got %v", tokType, describe(tok))
	}
	return p.advance(), nil
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return tok.Type.String()
	case TokenError:
		return strconv.Quote(tok.Value)
	}
	return fmt.Sprintf("%v %q", tok.Type, tok.Value)
}

// Parse reads all three clauses. Empty clauses are allowed.
func Parse(selectList, where, groupBy string) (*Query, error) {
	cols, err := ParseColumns(selectList)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	preds, err := ParseWhere(where)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	groups, err := ParseGroupBy(groupBy)
	if err != nil {
		return nil, fmt.Errorf("group by: %w", err)
	}
	return &Query{Columns: cols, Where: preds, GroupBy: groups}, nil
}

// ParseColumns reads a comma separated select list.
func ParseColumns(input string) ([]Column, error) {
	p := NewParser(input)
	var cols []Column
	if p.current().Type == TokenEOF {
		return nil, nil
	}
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		if p.current().Type == TokenAs {
			p.advance()
			alias, err := p.parseAlias()
			if err != nil {
				return nil, err
			}
			col.Alias = alias
		}
		cols = append(cols, col)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return cols, nil
}

// ParseWhere reads a conjunction of predicates. A term without an operator
// tests the column for true.
func ParseWhere(input string) ([]Predicate, error) {
	p := NewParser(input)
	var preds []Predicate
	if p.current().Type == TokenEOF {
		return nil, nil
	}
	for {
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)

		if p.current().Type != TokenAnd {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return preds, nil
}

// ParseGroupBy reads a comma separated list of fields.
func ParseGroupBy(input string) ([]field.Field, error) {
	p := NewParser(input)
	var out []field.Field
	if p.current().Type == TokenEOF {
		return nil, nil
	}
	for {
		tok, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		f, err := field.Resolve(tok.Value)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: err.Error(), Err: err}
		}
		out = append(out, f)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseAlias() (string, error) {
	tok := p.current()
	switch tok.Type {
	case TokenIdent, TokenString:
		p.advance()
		return tok.Value, nil
	}
	return "", p.errorf(tok, "expected alias, got %v", describe(tok))
}

// parseColumn reads field | literal | fn | fn '(' [arg {',' literal}] ')'.
func (p *Parser) parseColumn() (Column, error) {
	start := p.current()

	switch start.Type {
	case TokenString, TokenNumber:
		p.advance()
		return Column{Literal: start.Value, Text: p.input[start.Pos:start.End]}, nil
	case TokenIdent:
	default:
		if start.Type == TokenError {
			return Column{}, p.errorf(start, "unexpected %q", start.Value)
		}
		return Column{}, p.errorf(start, "expected column, got %v", describe(start))
	}

	if p.peek().Type != TokenLParen {
		p.advance()
		f, fieldErr := field.Resolve(start.Value)
		if fieldErr == nil {
			return Column{Field: f, HasField: true, Text: start.Value}, nil
		}
		// zero-argument functions such as current_user may omit parentheses
		if fn, err := function.Resolve(start.Value); err == nil && !fn.IsAggregate() {
			return Column{Function: fn, Text: start.Value}, nil
		}
		return Column{}, &SyntaxError{Pos: start.Pos, Msg: fieldErr.Error(), Err: fieldErr}
	}

	fn, err := function.Resolve(start.Value)
	if err != nil {
		return Column{}, &SyntaxError{Pos: start.Pos, Msg: err.Error(), Err: err}
	}
	p.advance() // name
	p.advance() // (

	col := Column{Function: fn}
	if p.current().Type != TokenRParen {
		if err := p.parseFirstArg(&col); err != nil {
			return Column{}, err
		}
		for p.current().Type == TokenComma {
			p.advance()
			tok := p.current()
			if tok.Type != TokenString && tok.Type != TokenNumber {
				return Column{}, p.errorf(tok, "expected literal argument, got %v", describe(tok))
			}
			col.Args = append(col.Args, p.advance().Value)
		}
	}
	end, err := p.expect(TokenRParen)
	if err != nil {
		return Column{}, err
	}
	col.Text = p.input[start.Pos:end.End]
	return col, nil
}

func (p *Parser) parseFirstArg(col *Column) error {
	tok := p.advance()
	switch tok.Type {
	case TokenStar:
		return nil
	case TokenString, TokenNumber:
		col.Literal = tok.Value
		return nil
	case TokenIdent:
		f, err := field.Resolve(tok.Value)
		if err != nil {
			return &SyntaxError{Pos: tok.Pos, Msg: err.Error(), Err: err}
		}
		col.Field, col.HasField = f, true
		return nil
	case TokenError:
		return p.errorf(tok, "unexpected %q", tok.Value)
	}
	return p.errorf(tok, "expected argument, got %v", describe(tok))
}

func (p *Parser) parsePredicate() (Predicate, error) {
	col, err := p.parseColumn()
	if err != nil {
		return Predicate{}, err
	}
	if col.IsAggregate() {
		return Predicate{}, p.errorf(p.tokens[max(p.pos-1, 0)], "aggregate %s cannot be used in a filter", col.Function)
	}

	opTok := p.current()
	if opTok.Type != TokenOp {
		return Predicate{Column: col, Op: OpEq, Literal: "true"}, nil
	}
	p.advance()
	op, _ := parseOp(opTok.Value)

	lit := p.current()
	switch lit.Type {
	case TokenString, TokenNumber, TokenIdent:
		p.advance()
	default:
		return Predicate{}, p.errorf(lit, "expected value after %s, got %v", op, describe(lit))
	}

	pred := Predicate{Column: col, Op: op, Literal: lit.Value}
	switch op {
	case OpLike:
		pred.pattern, err = likePattern(lit.Value)
	case OpRx:
		pred.pattern, err = regexp.Compile(lit.Value)
	}
	if err != nil {
		return Predicate{}, &SyntaxError{Pos: lit.Pos, Msg: "invalid pattern: " + err.Error(), Err: err}
	}
	if sizeLiteral(col) {
		n, err := parseSize(lit.Value)
		if err != nil {
			return Predicate{}, &SyntaxError{Pos: lit.Pos, Msg: err.Error(), Err: err}
		}
		pred.Literal = n
	}
	return pred, nil
}

// sizeLiteral reports whether the predicate compares a raw byte count.
func sizeLiteral(col Column) bool {
	return col.HasField && col.Function == function.None &&
		(col.Field == field.Size || col.Field == field.FormattedSize)
}

var errBadSize = errors.New("invalid size")

// parseSize accepts plain byte counts and humanized sizes such as 10k or 1.5MiB.
func parseSize(s string) (string, error) {
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return s, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return "", fmt.Errorf("%w %q", errBadSize, s)
	}
	return strconv.FormatUint(n, 10), nil
}

// likePattern translates SQL LIKE wildcards into an anchored, case-insensitive regexp.
func likePattern(s string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?is)^")
	for _, r := range s {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
