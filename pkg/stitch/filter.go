package stitch

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// TypeFilter decides which remote types are stitched into the local type
// set. It receives the remote type's name and introspection kind string.
type TypeFilter func(name, kind string) bool

// DefaultTypeFilter excludes introspection meta types (names prefixed "__")
// and scalar kinds.
func DefaultTypeFilter(name, kind string) bool {
	return !strings.HasPrefix(name, "__") && kind != introspection.KindScalar
}

// ExprTypeFilter compiles src, an expr-lang boolean expression over the
// variables name and kind, into a TypeFilter. For example:
//
//	kind == "OBJECT" and not hasPrefix(name, "__")
//
// An expression that fails at evaluation time excludes the type.
func ExprTypeFilter(src string) (TypeFilter, error) {
	program, err := expr.Compile(src, expr.Env(filterEnv("", "")), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile type filter %q: %w", src, err)
	}
	return func(name, kind string) bool {
		out, err := expr.Run(program, filterEnv(name, kind))
		if err != nil {
			return false
		}
		keep, _ := out.(bool)
		return keep
	}, nil
}

func filterEnv(name, kind string) map[string]interface{} {
	return map[string]interface{}{
		"name": name,
		"kind": kind,
	}
}
