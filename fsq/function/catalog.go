package function

import (
	"errors"
	"fmt"
	"strings"

	"github.com/armon/go-radix"
)

// ErrUnknownFunction is matched by every resolution failure.
var ErrUnknownFunction = errors.New("unknown function")

// UnknownFunctionError reports a name that is not in the alias table.
type UnknownFunctionError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownFunctionError) Error() string {
	msg := "unknown function " + e.Name
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *UnknownFunctionError) Is(target error) bool {
	return target == ErrUnknownFunction
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() *radix.Tree {
	tree := radix.New()
	for fn := None + 1; fn < numFunctions; fn++ {
		for _, alias := range catalog[fn].aliases {
			if _, dup := tree.Insert(alias, fn); dup {
				panic(fmt.Sprintf("function: duplicate alias %q", alias))
			}
		}
	}
	return tree
}

// Resolve maps user text onto a Function, ignoring case.
func Resolve(name string) (Function, error) {
	key := strings.ToLower(name)
	if v, ok := aliasIndex.Get(key); ok {
		return v.(Function), nil
	}

	var suggestions []string
	for n := len(key); n > 0 && len(suggestions) == 0; n-- {
		aliasIndex.WalkPrefix(key[:n], func(alias string, _ interface{}) bool {
			suggestions = append(suggestions, alias)
			return len(suggestions) >= 3
		})
	}
	return None, &UnknownFunctionError{Name: key, Suggestions: suggestions}
}

// All returns every function except None, in declaration order.
func All() []Function {
	out := make([]Function, 0, numFunctions-1)
	for fn := None + 1; fn < numFunctions; fn++ {
		out = append(out, fn)
	}
	return out
}

// Valid reports whether fn is a declared function other than None.
func (fn Function) Valid() bool { return fn > None && fn < numFunctions }

func (fn Function) String() string {
	if fn < None || fn >= numFunctions {
		return fmt.Sprintf("Function(%d)", int(fn))
	}
	return catalog[fn].id
}

// MarshalText emits the canonical identifier.
func (fn Function) MarshalText() ([]byte, error) {
	if !fn.Valid() {
		return nil, fmt.Errorf("function: invalid value %d", int(fn))
	}
	return []byte(catalog[fn].id), nil
}

func (fn Function) Aliases() []string {
	if !fn.Valid() {
		return nil
	}
	return append([]string(nil), catalog[fn].aliases...)
}

func (fn Function) ResultKind() ResultKind {
	if !fn.Valid() {
		return Unclassified
	}
	return catalog[fn].result
}

func (fn Function) IsAggregate() bool { return fn.Valid() && catalog[fn].aggregate }

// Weight is the relative execution cost used to order predicates; cheaper
// functions sort first.
func (fn Function) Weight() int {
	if !fn.Valid() {
		return 0
	}
	return catalog[fn].weight
}

func (fn Function) Group() string {
	if !fn.Valid() {
		return ""
	}
	return catalog[fn].group
}

func (fn Function) Description() string {
	if !fn.Valid() {
		return ""
	}
	return catalog[fn].description
}

// Requires returns the platform capability fn depends on.
func (fn Function) Requires() Capability {
	if !fn.Valid() {
		return NoCapability
	}
	return catalog[fn].needs
}

// GroupsInOrder returns the help group labels in display order.
func GroupsInOrder() []string {
	return append([]string(nil), groupOrder...)
}

// Entry is one line of the function reference.
type Entry struct {
	Function    Function
	Aliases     []string
	Description string
}

// CatalogEntries groups every function under its help label, in
// declaration order within each group.
func CatalogEntries() map[string][]Entry {
	out := make(map[string][]Entry, len(groupOrder))
	for _, fn := range All() {
		m := catalog[fn]
		out[m.group] = append(out[m.group], Entry{
			Function:    fn,
			Aliases:     append([]string(nil), m.aliases...),
			Description: m.description,
		})
	}
	return out
}
