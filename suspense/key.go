package suspense

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Var is a single operation variable. Order matters: keys derived from
// variables follow the declared enumeration order, not a sorted one.
type Var struct {
	Name  string
	Value any
}

// Vars is the ordered variable list of an options bag.
type Vars []Var

// Values returns the variable values in declared order.
func (v Vars) Values() []any {
	out := make([]any, len(v))
	for i, entry := range v {
		out[i] = entry.Value
	}
	return out
}

// Options is the caller-supplied bag a generated accessor forwards to Read.
// It carries variables and transport-level options; the operation document
// itself is supplied by the generated wiring and never appears here.
type Options struct {
	Variables Vars
	// Transport holds client-level options passed through to the fetcher
	// untouched. They never participate in key derivation.
	Transport map[string]any
}

// DefaultKey derives a stable hash over the full argument tuple. The empty
// tuple maps to the literal key "default".
func DefaultKey(args []any) string {
	if len(args) == 0 {
		return "default"
	}
	digest := xxhash.New()
	for i, arg := range args {
		if i > 0 {
			digest.WriteString("\x1f")
		}
		fmt.Fprintf(digest, "%#v", arg)
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

// VariablesKey is the per-operation override installed by generated wirings.
// It discards the first argument (the transport client handle) and joins the
// string form of every variable value in the second argument's options bag,
// in declared order, with "-". Variables {city: melbourne, country: au}
// derive the key "melbourne-au". Tuples that do not carry an options bag
// fall back to DefaultKey.
func VariablesKey(args []any) string {
	if len(args) < 2 {
		return DefaultKey(args)
	}
	var opts Options
	switch bag := args[1].(type) {
	case Options:
		opts = bag
	case *Options:
		if bag == nil {
			return ""
		}
		opts = *bag
	default:
		return DefaultKey(args)
	}
	parts := make([]string, len(opts.Variables))
	for i, entry := range opts.Variables {
		parts[i] = fmt.Sprint(entry.Value)
	}
	return strings.Join(parts, "-")
}
