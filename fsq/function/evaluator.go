package function

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/rs/zerolog"
)

// Clock supplies the current time. Implementations must be safe for
// concurrent use.
type Clock interface {
	Now() time.Time
}

// Rand supplies random numbers. Implementations must be safe for
// concurrent use; *rand.Rand from math/rand/v2 is not unless guarded.
type Rand interface {
	Uint64N(n uint64) uint64
}

// Platform lists the optional features available on the host.
type Platform struct {
	Identity bool
	Xattr    bool
	FileCaps bool
}

// HostPlatform reports the features of the running operating system.
func HostPlatform() Platform {
	switch runtime.GOOS {
	case "linux":
		return Platform{Identity: true, Xattr: true, FileCaps: true}
	case "darwin":
		return Platform{Identity: true, Xattr: true}
	case "windows", "plan9", "js", "wasip1":
		return Platform{}
	default:
		return Platform{Identity: true}
	}
}

// Supports reports whether c is available.
func (p Platform) Supports(c Capability) bool {
	switch c {
	case IdentityCapability:
		return p.Identity
	case XattrCapability:
		return p.Xattr
	case FileCapsCapability:
		return p.FileCaps
	default:
		return true
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type globalRand struct{}

func (globalRand) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// ArgumentError reports a malformed query argument. It is the only error
// Evaluate returns and callers should treat it as fatal.
type ArgumentError struct {
	Function Function
	Arg      string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Function, e.Reason, e.Arg)
}

// Evaluator applies scalar functions to row values. It holds no per-row
// state and may be shared between scan workers.
type Evaluator struct {
	clock    Clock
	rand     Rand
	platform Platform
	logger   zerolog.Logger
}

// Option customises an Evaluator.
type Option func(*Evaluator)

func WithClock(c Clock) Option { return func(e *Evaluator) { e.clock = c } }

func WithRand(r Rand) Option { return func(e *Evaluator) { e.rand = r } }

func WithPlatform(p Platform) Option { return func(e *Evaluator) { e.platform = p } }

func WithLogger(l zerolog.Logger) Option { return func(e *Evaluator) { e.logger = l } }

// NewEvaluator returns an Evaluator using the wall clock, the global random
// source and the host platform unless overridden.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		clock:    systemClock{},
		rand:     globalRand{},
		platform: HostPlatform(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Platform returns the feature set the evaluator was built with.
func (e *Evaluator) Platform() Platform { return e.platform }

// Evaluate applies fn to arg and the extra args. entry is the row's
// directory entry, info its pre-extracted record; either may be nil.
//
// With fn == None the result is an empty String and the caller substitutes
// the raw field text. Malformed data never produces an error, only an empty
// value; the error is reserved for malformed random arguments.
func (e *Evaluator) Evaluate(fn Function, arg string, args []string, entry *fileinfo.Entry, info *fileinfo.Info) (variant.Value, error) {
	if fn.Valid() && !e.platform.Supports(fn.Requires()) {
		return variant.Unsupported(emptyKind(fn)), nil
	}

	switch fn {
	case Lower, Upper, InitCap, Length, ToBase64, FromBase64, Concat, ConcatWs,
		Locate, Substring, Replace, Trim, LTrim, RTrim:
		return evalString(fn, arg, args), nil

	case Bin, Hex, Oct, Abs, Power, Sqrt, Log, Ln, Exp, Least, Greatest:
		return evalNumeric(fn, arg, args), nil

	case ContainsJapanese, ContainsHiragana, ContainsKatakana, ContainsKana, ContainsKanji:
		return evalJapanese(fn, arg), nil

	case FormatSize:
		return formatSizeValue(arg, args), nil
	case FormatTime:
		return formatTimeValue(arg), nil

	case CurrentDate:
		return variant.FromString(e.clock.Now().Format(variant.DateLayout)), nil
	case Day, Month, Year, DayOfWeek:
		return evalDatePart(fn, arg), nil

	case CurrentUid, CurrentUser, CurrentGid, CurrentGroup:
		return e.evalIdentity(fn), nil

	case Contains:
		return e.contains(arg, entry, info), nil

	case HasXattr, Xattr, HasCapabilities, HasCapability:
		return e.evalXattr(fn, arg, entry), nil

	case Coalesce:
		if arg != "" {
			return variant.FromString(arg), nil
		}
		for _, a := range args {
			if a != "" {
				return variant.FromString(a), nil
			}
		}
		return variant.Empty(variant.String), nil

	case Random:
		return e.random(arg, args)
	}

	// None, aggregates, anything undeclared
	return variant.Empty(variant.String), nil
}

func emptyKind(fn Function) variant.Kind {
	switch fn.ResultKind() {
	case Numeric:
		return variant.Int
	case Boolean:
		return variant.Bool
	default:
		return variant.String
	}
}

// random draws from [0, MaxInt64), [0, n) or [lo, hi).
func (e *Evaluator) random(arg string, args []string) (variant.Value, error) {
	if arg == "" {
		return variant.FromInt(int64(e.rand.Uint64N(math.MaxInt64))), nil
	}

	lo, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return variant.Empty(variant.Int), &ArgumentError{Function: Random, Arg: arg, Reason: "could not parse argument"}
	}

	if len(args) == 0 {
		if lo <= 0 {
			return variant.Empty(variant.Int), &ArgumentError{Function: Random, Arg: arg, Reason: "upper bound must be positive"}
		}
		return variant.FromInt(int64(e.rand.Uint64N(uint64(lo)))), nil
	}

	hi, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return variant.Empty(variant.Int), &ArgumentError{Function: Random, Arg: args[0], Reason: "could not parse limit argument"}
	}
	if hi <= lo {
		return variant.Empty(variant.Int), &ArgumentError{Function: Random, Arg: args[0], Reason: "limit must be greater than " + arg}
	}
	span := uint64(hi) - uint64(lo)
	return variant.FromInt(lo + int64(e.rand.Uint64N(span))), nil
}
