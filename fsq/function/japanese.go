package function

import (
	"strings"
	"unicode"

	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

// CJK symbols and punctuation: 、。「」 and friends.
var japanesePunct = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3000, Hi: 0x303f, Stride: 1}}}

var (
	hiragana = []*unicode.RangeTable{unicode.Hiragana}
	katakana = []*unicode.RangeTable{unicode.Katakana}
	kana     = []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}
	kanji    = []*unicode.RangeTable{unicode.Han}
	japanese = []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana, unicode.Han, japanesePunct}
)

func evalJapanese(fn Function, s string) variant.Value {
	var tables []*unicode.RangeTable
	switch fn {
	case ContainsHiragana:
		tables = hiragana
	case ContainsKatakana:
		tables = katakana
	case ContainsKana:
		tables = kana
	case ContainsKanji:
		tables = kanji
	default:
		tables = japanese
	}
	return variant.FromBool(containsAny(s, tables))
}

func containsAny(s string, tables []*unicode.RangeTable) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.IsOneOf(tables, r) }) >= 0
}
