// Package query reads the select list, where clause and group-by list of
// a search into resolved columns and predicates.
//
// The grammar is deliberately small: a column is a field, a literal, or a
// function call whose first argument is a field, a literal or '*' and whose
// remaining arguments are literals. A where clause is a conjunction of
// comparisons joined by AND.
//
//	cols, err := ParseColumns("name, format_size(size, '%.1 k') as size")
//	preds, err := ParseWhere("size gt 1MiB and contains('TODO')")
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError
	TokenIdent
	TokenString
	TokenNumber
	TokenLParen
	TokenRParen
	TokenComma
	TokenStar
	TokenOp
	TokenAnd
	TokenAs
)

var tokenNames = [...]string{
	TokenEOF:    "end of input",
	TokenError:  "invalid input",
	TokenIdent:  "identifier",
	TokenString: "string",
	TokenNumber: "number",
	TokenLParen: "'('",
	TokenRParen: "')'",
	TokenComma:  "','",
	TokenStar:   "'*'",
	TokenOp:     "operator",
	TokenAnd:    "AND",
	TokenAs:     "AS",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token represents a lexical token. Pos and End are byte offsets into the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	End   int
}

// SyntaxError reports where a clause could not be read.
type SyntaxError struct {
	Pos int
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Column is one projected expression.
type Column struct {
	Function function.Function
	Field    field.Field
	HasField bool
	// Literal is the first argument when it is not a field.
	Literal string
	Args    []string
	Alias   string
	// Text is the column as written, used as header and row key.
	Text string
}

// Key names the column in output and in aggregate row buffers.
func (c Column) Key() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Text
}

// IsAggregate reports whether the column reduces a group.
func (c Column) IsAggregate() bool { return c.Function.IsAggregate() }

// Op is a comparison operator.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
	OpLike
	OpRx
)

var opNames = [...]string{"=", "!=", ">", ">=", "<", "<=", "like", "rx"}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

func parseOp(s string) (Op, bool) {
	switch strings.ToLower(s) {
	case "=", "eq":
		return OpEq, true
	case "!=", "ne":
		return OpNe, true
	case ">", "gt":
		return OpGt, true
	case ">=", "gte", "ge":
		return OpGte, true
	case "<", "lt":
		return OpLt, true
	case "<=", "lte", "le":
		return OpLte, true
	case "like":
		return OpLike, true
	case "~", "rx":
		return OpRx, true
	}
	return 0, false
}

// Predicate is one term of a conjunctive where clause.
type Predicate struct {
	Column  Column
	Op      Op
	Literal string

	pattern *regexp.Regexp
}

// Weight is the evaluation cost of the predicate's function.
func (p Predicate) Weight() int { return p.Column.Function.Weight() }

// Query bundles the parsed clauses of one search.
type Query struct {
	Columns []Column
	Where   []Predicate
	GroupBy []field.Field
}

// Fields returns every field the query reads.
func (q *Query) Fields() *field.Set {
	s := field.NewSet()
	for _, c := range q.Columns {
		if c.HasField {
			s.Add(c.Field)
		}
	}
	for _, p := range q.Where {
		if p.Column.HasField {
			s.Add(p.Column.Field)
		}
	}
	for _, f := range q.GroupBy {
		s.Add(f)
	}
	return s
}

// HasAggregate reports whether any column is an aggregate.
func (q *Query) HasAggregate() bool {
	for _, c := range q.Columns {
		if c.IsAggregate() {
			return true
		}
	}
	return false
}

// Header returns the column keys in order.
func (q *Query) Header() []string {
	out := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		out[i] = c.Key()
	}
	return out
}
