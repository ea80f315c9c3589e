package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	type tok struct {
		Type  TokenType
		Value string
	}
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "function call",
			input: "format_size(size, '%.1 k')",
			expected: []tok{
				{TokenIdent, "format_size"}, {TokenLParen, "("}, {TokenIdent, "size"},
				{TokenComma, ","}, {TokenString, "%.1 k"}, {TokenRParen, ")"}, {TokenEOF, ""},
			},
		},
		{
			name:  "symbolic operators",
			input: "= == != <> < <= > >= ~",
			expected: []tok{
				{TokenOp, "="}, {TokenOp, "="}, {TokenOp, "!="}, {TokenOp, "!="},
				{TokenOp, "<"}, {TokenOp, "<="}, {TokenOp, ">"}, {TokenOp, ">="}, {TokenOp, "~"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "word operators and keywords",
			input: "GT lte like AND as",
			expected: []tok{
				{TokenOp, "GT"}, {TokenOp, "lte"}, {TokenOp, "like"}, {TokenAnd, "AND"}, {TokenAs, "as"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "numbers with units",
			input: "10 -3.5 1.5MiB 4k",
			expected: []tok{
				{TokenNumber, "10"}, {TokenNumber, "-3.5"}, {TokenNumber, "1.5MiB"}, {TokenNumber, "4k"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "quoted strings and escapes",
			input: `"it's" 'a\'b' '\.go$' 'tab\there'`,
			expected: []tok{
				{TokenString, "it's"}, {TokenString, "a'b"}, {TokenString, `\.go$`}, {TokenString, "tab\there"},
				{TokenEOF, ""},
			},
		},
		{
			name:  "unicode identifiers",
			input: "名前",
			expected: []tok{
				{TokenIdent, "名前"}, {TokenEOF, ""},
			},
		},
		{
			name:  "unterminated string",
			input: "name = 'abc",
			expected: []tok{
				{TokenIdent, "name"}, {TokenOp, "="}, {TokenError, "unterminated string"},
			},
		},
		{
			name:  "stray character",
			input: "name ; size",
			expected: []tok{
				{TokenIdent, "name"}, {TokenError, ";"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			require.Len(t, tokens, len(tt.expected))
			for i, got := range tokens {
				assert.Equal(t, tt.expected[i].Type, got.Type, "token %d", i)
				assert.Equal(t, tt.expected[i].Value, got.Value, "token %d", i)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("  upper(name)")
	require.Len(t, tokens, 5)
	assert.Equal(t, 2, tokens[0].Pos)
	assert.Equal(t, 7, tokens[0].End)
	assert.Equal(t, 13, tokens[3].End)
	assert.Equal(t, 13, tokens[4].Pos)
}
