// Package function holds the catalog of scalar and aggregate functions and
// the evaluators that apply them.
//
// The catalog is a closed enumeration. Each Function has a row in a static
// metadata table carrying its aliases, help group, description, result kind,
// aggregate flag, cost weight and the platform capability it needs. The
// zero value None stands for "no function named".
package function

// Function identifies a catalog entry.
type Function int

const (
	None Function = iota

	// String
	Lower
	Upper
	InitCap
	Length
	ToBase64
	FromBase64
	Concat
	ConcatWs
	Locate
	Substring
	Replace
	Trim
	LTrim
	RTrim

	// Numeric
	Bin
	Hex
	Oct
	Abs
	Power
	Sqrt
	Log
	Ln
	Exp
	Least
	Greatest

	// Japanese string
	ContainsJapanese
	ContainsHiragana
	ContainsKatakana
	ContainsKana
	ContainsKanji

	// Formatting
	FormatSize
	FormatTime

	// Datetime
	CurrentDate
	Day
	Month
	Year
	DayOfWeek

	// Identity
	CurrentUid
	CurrentUser
	CurrentGid
	CurrentGroup

	// File content
	Contains

	// Xattr
	HasXattr
	Xattr
	HasCapabilities
	HasCapability

	// Miscellaneous
	Coalesce
	Random

	// Aggregate
	Min
	Max
	Avg
	Sum
	Count
	StdDevPop
	StdDevSamp
	VarPop
	VarSamp

	numFunctions
)

// ResultKind is the declared result classification of a function. It is
// fixed per function and does not depend on the arguments.
type ResultKind uint8

const (
	Unclassified ResultKind = iota
	Numeric
	Boolean
)

func (k ResultKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	default:
		return "unclassified"
	}
}

// Capability is a platform feature a function depends on.
type Capability uint8

const (
	NoCapability Capability = iota
	IdentityCapability
	XattrCapability
	FileCapsCapability
)

// Help group labels in display order.
const (
	GroupString   = "String"
	GroupJapanese = "Japanese string"
	GroupNumeric  = "Numeric"
	GroupDatetime = "Datetime"
	GroupAggr     = "Aggregate"
	GroupXattr    = "Xattr"
	GroupOther    = "Other"
)

var groupOrder = []string{GroupString, GroupJapanese, GroupNumeric, GroupDatetime, GroupAggr, GroupXattr, GroupOther}

type meta struct {
	id          string
	aliases     []string
	result      ResultKind
	aggregate   bool
	weight      int
	group       string
	description string
	needs       Capability
}

// Weights. Anything not listed costs 0.
const (
	weightAmbient = 1    // environment lookups and clock/RNG access
	weightXattr   = 2    // one getxattr per row
	weightContent = 1024 // whole-file read
)

var catalog = [numFunctions]meta{
	None: {id: "None"},

	Lower:      {id: "Lower", aliases: []string{"lower", "lowercase", "lcase"}, group: GroupString, description: "Convert the value to lowercase"},
	Upper:      {id: "Upper", aliases: []string{"upper", "uppercase", "ucase"}, group: GroupString, description: "Convert the value to UPPERCASE"},
	InitCap:    {id: "InitCap", aliases: []string{"initcap"}, group: GroupString, description: "Capitalize the first letter of each word (Title Case)"},
	Length:     {id: "Length", aliases: []string{"length", "len"}, result: Numeric, group: GroupString, description: "Get the length of the string"},
	ToBase64:   {id: "ToBase64", aliases: []string{"to_base64", "base64"}, group: GroupString, description: "Convert the value to base64"},
	FromBase64: {id: "FromBase64", aliases: []string{"from_base64"}, group: GroupString, description: "Read the value as base64"},
	Concat:     {id: "Concat", aliases: []string{"concat"}, group: GroupString, description: "Concatenate the value with the arguments"},
	ConcatWs:   {id: "ConcatWs", aliases: []string{"concat_ws"}, group: GroupString, description: "Concatenate the arguments, separated by the value"},
	Locate:     {id: "Locate", aliases: []string{"locate", "position"}, result: Numeric, group: GroupString, description: "Get the position of a substring in the value"},
	Substring:  {id: "Substring", aliases: []string{"substr", "substring"}, group: GroupString, description: "Get a substring of the value, from a position and length"},
	Replace:    {id: "Replace", aliases: []string{"replace"}, group: GroupString, description: "Replace a substring in the value with another string"},
	Trim:       {id: "Trim", aliases: []string{"trim"}, group: GroupString, description: "Trim whitespace from the value"},
	LTrim:      {id: "LTrim", aliases: []string{"ltrim"}, group: GroupString, description: "Trim whitespace from the start of the value"},
	RTrim:      {id: "RTrim", aliases: []string{"rtrim"}, group: GroupString, description: "Trim whitespace from the end of the value"},

	Bin:      {id: "Bin", aliases: []string{"bin"}, group: GroupNumeric, description: "Get the binary representation of the value"},
	Hex:      {id: "Hex", aliases: []string{"hex"}, group: GroupNumeric, description: "Get the hexadecimal representation of the value"},
	Oct:      {id: "Oct", aliases: []string{"oct"}, group: GroupNumeric, description: "Get the octal representation of the value"},
	Abs:      {id: "Abs", aliases: []string{"abs"}, result: Numeric, group: GroupNumeric, description: "Get the absolute value of the number"},
	Power:    {id: "Power", aliases: []string{"power", "pow"}, result: Numeric, group: GroupNumeric, description: "Raise the value to the power of another value"},
	Sqrt:     {id: "Sqrt", aliases: []string{"sqrt"}, result: Numeric, group: GroupNumeric, description: "Get the square root of the value"},
	Log:      {id: "Log", aliases: []string{"log"}, result: Numeric, group: GroupNumeric, description: "Get the logarithm of the value with a specific base"},
	Ln:       {id: "Ln", aliases: []string{"ln"}, result: Numeric, group: GroupNumeric, description: "Get the natural logarithm of the value"},
	Exp:      {id: "Exp", aliases: []string{"exp"}, result: Numeric, group: GroupNumeric, description: "Get e raised to the power of the specified number"},
	Least:    {id: "Least", aliases: []string{"least"}, result: Numeric, group: GroupNumeric, description: "Get the smallest value"},
	Greatest: {id: "Greatest", aliases: []string{"greatest"}, result: Numeric, group: GroupNumeric, description: "Get the largest value"},

	ContainsJapanese: {id: "ContainsJapanese", aliases: []string{"contains_japanese", "japanese"}, result: Boolean, group: GroupJapanese, description: "Check if the string contains Japanese characters"},
	ContainsHiragana: {id: "ContainsHiragana", aliases: []string{"contains_hiragana", "hiragana"}, result: Boolean, group: GroupJapanese, description: "Check if the string contains Hiragana characters"},
	ContainsKatakana: {id: "ContainsKatakana", aliases: []string{"contains_katakana", "katakana"}, result: Boolean, group: GroupJapanese, description: "Check if the string contains Katakana characters"},
	ContainsKana:     {id: "ContainsKana", aliases: []string{"contains_kana", "kana"}, result: Boolean, group: GroupJapanese, description: "Check if the string contains Kana characters"},
	ContainsKanji:    {id: "ContainsKanji", aliases: []string{"contains_kanji", "kanji"}, result: Boolean, group: GroupJapanese, description: "Check if the string contains Kanji characters"},

	FormatSize: {id: "FormatSize", aliases: []string{"format_size", "format_filesize"}, group: GroupOther, description: "Format a file size in human-readable format"},
	FormatTime: {id: "FormatTime", aliases: []string{"format_time", "pretty_time"}, group: GroupOther, description: "Format a time duration in human-readable format"},

	CurrentDate: {id: "CurrentDate", aliases: []string{"current_date", "cur_date", "curdate"}, weight: weightAmbient, group: GroupDatetime, description: "Get the current date"},
	Day:         {id: "Day", aliases: []string{"day"}, result: Numeric, group: GroupDatetime, description: "Get the day from a date"},
	Month:       {id: "Month", aliases: []string{"month"}, result: Numeric, group: GroupDatetime, description: "Get the month from a date"},
	Year:        {id: "Year", aliases: []string{"year"}, result: Numeric, group: GroupDatetime, description: "Get the year from a date"},
	DayOfWeek:   {id: "DayOfWeek", aliases: []string{"dayofweek", "dow"}, result: Numeric, group: GroupDatetime, description: "Get the day of the week from a date"},

	CurrentUid:   {id: "CurrentUid", aliases: []string{"current_uid"}, result: Numeric, weight: weightAmbient, group: GroupOther, description: "Get the current user ID", needs: IdentityCapability},
	CurrentUser:  {id: "CurrentUser", aliases: []string{"current_user"}, weight: weightAmbient, group: GroupOther, description: "Get the current username", needs: IdentityCapability},
	CurrentGid:   {id: "CurrentGid", aliases: []string{"current_gid"}, result: Numeric, weight: weightAmbient, group: GroupOther, description: "Get the current group ID", needs: IdentityCapability},
	CurrentGroup: {id: "CurrentGroup", aliases: []string{"current_group"}, weight: weightAmbient, group: GroupOther, description: "Get the current group name", needs: IdentityCapability},

	Contains: {id: "Contains", aliases: []string{"contains"}, result: Boolean, weight: weightContent, group: GroupOther, description: "Checks if a file contains a substring"},

	HasXattr:        {id: "HasXattr", aliases: []string{"has_xattr"}, result: Boolean, weight: weightXattr, group: GroupXattr, description: "Check if the file has a specific extended attribute", needs: XattrCapability},
	Xattr:           {id: "Xattr", aliases: []string{"xattr"}, weight: weightXattr, group: GroupXattr, description: "Get the value of an extended attribute", needs: XattrCapability},
	HasCapabilities: {id: "HasCapabilities", aliases: []string{"has_capabilities", "has_caps"}, result: Boolean, weight: weightXattr, group: GroupXattr, description: "Check if the file has capabilities (security.capability xattr)", needs: FileCapsCapability},
	HasCapability:   {id: "HasCapability", aliases: []string{"has_capability", "has_cap"}, result: Boolean, weight: weightXattr, group: GroupXattr, description: "Check if the file has a specific capability (security.capability xattr)", needs: FileCapsCapability},

	Coalesce: {id: "Coalesce", aliases: []string{"coalesce"}, group: GroupOther, description: "Return the first non-empty value"},
	Random:   {id: "Random", aliases: []string{"rand", "random"}, result: Numeric, weight: weightAmbient, group: GroupNumeric, description: "Gets a random number from 0 to the value, or between two values"},

	Min:        {id: "Min", aliases: []string{"min"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the minimum value"},
	Max:        {id: "Max", aliases: []string{"max"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the maximum value"},
	Avg:        {id: "Avg", aliases: []string{"avg"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the average value"},
	Sum:        {id: "Sum", aliases: []string{"sum"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the sum of all values"},
	Count:      {id: "Count", aliases: []string{"count"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the number of values"},
	StdDevPop:  {id: "StdDevPop", aliases: []string{"stddev_pop", "stddev", "std"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the population standard deviation"},
	StdDevSamp: {id: "StdDevSamp", aliases: []string{"stddev_samp"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the sample standard deviation"},
	VarPop:     {id: "VarPop", aliases: []string{"var_pop", "variance"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the population variance"},
	VarSamp:    {id: "VarSamp", aliases: []string{"var_samp"}, result: Numeric, aggregate: true, group: GroupAggr, description: "Get the sample variance"},
}
