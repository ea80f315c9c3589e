package function

import (
	"bytes"
	"errors"
	"os"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

// contains reads the whole file behind entry and tests it for needle.
// Rows carrying a pre-extracted record have no file on disk and yield empty,
// as do unreadable files and content that is not valid UTF-8.
func (e *Evaluator) contains(needle string, entry *fileinfo.Entry, info *fileinfo.Info) variant.Value {
	if info != nil || entry == nil {
		return variant.Empty(variant.Bool)
	}
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		e.logger.Debug().Err(err).Str("path", entry.Path).Msg("contains: read failed")
		return variant.Empty(variant.Bool)
	}
	if !utf8.Valid(data) {
		return variant.Empty(variant.Bool)
	}
	return variant.FromBool(bytes.Contains(data, []byte(needle)))
}

func (e *Evaluator) evalXattr(fn Function, arg string, entry *fileinfo.Entry) variant.Value {
	kind := emptyKind(fn)
	if entry == nil {
		return variant.Empty(kind)
	}

	name := arg
	if fn == HasCapabilities || fn == HasCapability {
		name = fileinfo.CapabilityXattr
	}

	value, err := fileinfo.GetXattr(entry.Path, name)
	switch {
	case errors.Is(err, fileinfo.ErrNoXattr):
		if fn == Xattr {
			return variant.Empty(variant.String)
		}
		return variant.FromBool(false)
	case errors.Is(err, fileinfo.ErrXattrUnsupported):
		return variant.Unsupported(kind)
	case err != nil:
		e.logger.Debug().Err(err).Str("path", entry.Path).Str("xattr", name).Msg("xattr read failed")
		return variant.Empty(kind)
	}

	switch fn {
	case HasXattr, HasCapabilities:
		return variant.FromBool(true)
	case Xattr:
		if !utf8.Valid(value) {
			return variant.Empty(variant.String)
		}
		return variant.FromString(string(value))
	case HasCapability:
		caps, err := ParseCapabilities(value)
		if err != nil {
			e.logger.Debug().Err(err).Str("path", entry.Path).Msg("malformed capability xattr")
			return variant.Empty(variant.Bool)
		}
		return variant.FromBool(caps.Has(arg))
	}
	return variant.Empty(kind)
}
