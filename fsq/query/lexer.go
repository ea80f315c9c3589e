package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes select lists, where clauses and group-by lists.
type Lexer struct {
	input string
	pos   int // byte offset of ch
	next  int
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += w
}

func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a quoted string. ok is false when the closing quote is missing.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // opening quote

	for l.ch != quote {
		if l.ch == 0 && l.pos >= len(l.input) {
			return result.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case 0:
				return result.String(), false
			case quote, '\\':
				result.WriteRune(l.ch)
			default:
				// kept for regexp escapes such as \.
				result.WriteRune('\\')
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}
	l.readChar() // closing quote
	return result.String(), true
}

// readNumber reads digits plus an optional unit suffix, e.g. 10, -3.5, 1.5MiB.
func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for unicode.IsDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	for unicode.IsLetter(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	tok := Token{Pos: start}

	switch {
	case l.ch == 0 && l.pos >= len(l.input):
		tok.Type, tok.End = TokenEOF, start
		return tok
	case l.ch == '(':
		tok.Type, tok.Value = TokenLParen, "("
		l.readChar()
	case l.ch == ')':
		tok.Type, tok.Value = TokenRParen, ")"
		l.readChar()
	case l.ch == ',':
		tok.Type, tok.Value = TokenComma, ","
		l.readChar()
	case l.ch == '*':
		tok.Type, tok.Value = TokenStar, "*"
		l.readChar()
	case l.ch == '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
		tok.Type, tok.Value = TokenOp, "="
	case l.ch == '!':
		if l.peekChar() != '=' {
			tok.Type, tok.Value = TokenError, "!"
			l.readChar()
			break
		}
		l.readChar()
		l.readChar()
		tok.Type, tok.Value = TokenOp, "!="
	case l.ch == '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			tok.Type, tok.Value = TokenOp, "<="
		case '>':
			l.readChar()
			tok.Type, tok.Value = TokenOp, "!="
		default:
			tok.Type, tok.Value = TokenOp, "<"
		}
	case l.ch == '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type, tok.Value = TokenOp, ">="
		} else {
			tok.Type, tok.Value = TokenOp, ">"
		}
	case l.ch == '~':
		l.readChar()
		tok.Type, tok.Value = TokenOp, "~"
	case l.ch == '\'' || l.ch == '"':
		value, ok := l.readString(l.ch)
		if !ok {
			tok.Type, tok.Value = TokenError, "unterminated string"
			break
		}
		tok.Type, tok.Value = TokenString, value
	case unicode.IsDigit(l.ch) || (l.ch == '-' && unicode.IsDigit(l.peekChar())):
		tok.Type, tok.Value = TokenNumber, l.readNumber()
	case unicode.IsLetter(l.ch) || l.ch == '_':
		value := l.readIdentifier()
		tok.Type, tok.Value = identifierType(value), value
	default:
		tok.Type, tok.Value = TokenError, string(l.ch)
		l.readChar()
	}

	tok.End = l.pos
	return tok
}

func identifierType(ident string) TokenType {
	switch strings.ToLower(ident) {
	case "and":
		return TokenAnd
	case "as":
		return TokenAs
	case "eq", "ne", "gt", "gte", "ge", "lt", "lte", "le", "like", "rx":
		return TokenOp
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input, ending with EOF or the first error.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
