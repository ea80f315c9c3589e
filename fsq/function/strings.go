package function

import (
	"encoding/base64"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

func evalString(fn Function, arg string, args []string) variant.Value {
	switch fn {
	case Lower:
		return variant.FromString(strings.ToLower(arg))
	case Upper:
		return variant.FromString(strings.ToUpper(arg))
	case InitCap:
		return variant.FromString(initCap(arg))
	case Length:
		return variant.FromInt(int64(utf8.RuneCountInString(arg)))
	case ToBase64:
		return variant.FromString(base64.StdEncoding.EncodeToString([]byte(arg)))
	case FromBase64:
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(arg))
		if err != nil {
			return variant.Empty(variant.String)
		}
		return variant.FromString(strings.ToValidUTF8(string(raw), "\uFFFD"))
	case Concat:
		return variant.FromString(arg + strings.Join(args, ""))
	case ConcatWs:
		return variant.FromString(strings.Join(args, arg))
	case Locate:
		return locate(arg, args)
	case Substring:
		return substring(arg, args)
	case Replace:
		if len(args) < 2 {
			return variant.Empty(variant.String)
		}
		return variant.FromString(strings.ReplaceAll(arg, args[0], args[1]))
	case Trim:
		return variant.FromString(strings.TrimSpace(arg))
	case LTrim:
		return variant.FromString(strings.TrimLeftFunc(arg, unicode.IsSpace))
	case RTrim:
		return variant.FromString(strings.TrimRightFunc(arg, unicode.IsSpace))
	}
	return variant.Empty(variant.String)
}

// initCap lower-cases every whitespace separated word, upper-cases its first
// rune and joins the words with single spaces.
func initCap(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// locate returns the 1-based rune position of args[0] in s, searching from
// the optional 1-based start args[1]; 0 when absent.
func locate(s string, args []string) variant.Value {
	if len(args) == 0 {
		return variant.Empty(variant.Int)
	}
	start := 0
	if len(args) > 1 {
		pos, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return variant.Empty(variant.Int)
		}
		start = max(pos-1, 0)
	}

	runes := []rune(s)
	if start > len(runes) {
		return variant.FromInt(0)
	}
	idx := strings.Index(string(runes[start:]), args[0])
	if idx < 0 {
		return variant.FromInt(0)
	}
	offset := utf8.RuneCountInString(string(runes[start:])[:idx])
	return variant.FromInt(int64(start + offset + 1))
}

// substring takes len runes starting at the 1-based position pos. A negative
// pos counts from the end; a missing or zero len takes the rest.
func substring(s string, args []string) variant.Value {
	runes := []rune(s)

	pos := 0
	if len(args) > 0 {
		p, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return variant.Empty(variant.String)
		}
		pos = p - 1
		if pos < 0 {
			pos = len(runes) + pos + 1
		}
		pos = min(max(pos, 0), len(runes))
	}

	length := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil || n < 0 {
			return variant.Empty(variant.String)
		}
		length = n
	}

	rest := runes[pos:]
	if length > 0 && length < len(rest) {
		rest = rest[:length]
	}
	return variant.FromString(string(rest))
}
