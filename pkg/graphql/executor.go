package graphql

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/getstitchd/stitchd/pkg/stitch"
)

// Executor executes GraphQL queries against a stitched type graph, reading
// field values out of a semi-structured payload supplied at execution time.
type Executor struct {
	root   *stitch.RemoteType
	logger *slog.Logger
}

// NewExecutor creates an executor whose queries start at root, typically the
// remote-backed type of the upstream schema's root query type.
func NewExecutor(root *stitch.RemoteType, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{root: root, logger: logger}
}

// Root returns the type queries execute against.
func (e *Executor) Root() *stitch.RemoteType {
	return e.root
}

// Execute runs the request's selection set against payload and returns a
// GraphQL response. Payload keys match remote field names; nested complex
// fields expect the value under their key to be an object, or an array of
// objects for list fields.
func (e *Executor) Execute(ctx context.Context, req *Request, payload map[string]interface{}) *Response {
	if req == nil || req.Query == "" {
		return &Response{Errors: []Error{{Message: "query is required"}}}
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "query", Input: req.Query})
	if err != nil {
		return &Response{Errors: []Error{{Message: fmt.Sprintf("parse error: %v", err)}}}
	}

	var op *ast.OperationDefinition
	for _, opDef := range doc.Operations {
		if req.OperationName == "" || opDef.Name == req.OperationName {
			op = opDef
			break
		}
	}
	if op == nil {
		if req.OperationName != "" {
			return &Response{Errors: []Error{{Message: fmt.Sprintf("operation %q not found", req.OperationName)}}}
		}
		return &Response{Errors: []Error{{Message: "no operation found in query"}}}
	}
	if op.Operation != ast.Query {
		return &Response{Errors: []Error{{Message: fmt.Sprintf("%s operations are not supported", op.Operation)}}}
	}

	data, errs := e.resolveSelectionSet(ctx, doc, e.root, op.SelectionSet, payload, nil)
	return &Response{Data: data, Errors: errs}
}

// resolveSelectionSet resolves one selection set against source through the
// remote-backed type t. Fragment spreads and inline fragments are expanded
// in place.
func (e *Executor) resolveSelectionSet(ctx context.Context, doc *ast.QueryDocument, t *stitch.RemoteType, selections ast.SelectionSet, source map[string]interface{}, path []interface{}) (map[string]interface{}, []Error) {
	result := make(map[string]interface{})
	var errs []Error

	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			alias := s.Alias
			if alias == "" {
				alias = s.Name
			}
			fieldPath := appendPath(path, alias)

			if s.Name == "__typename" {
				result[alias] = t.Name()
				continue
			}

			fd, ok, err := t.Field(ctx, s.Name)
			if err != nil {
				errs = append(errs, Error{Message: err.Error(), Path: fieldPath})
				result[alias] = nil
				continue
			}
			if !ok {
				// The field was dropped as unresolvable or never existed
				// remotely; it resolves to null.
				e.logger.Debug("query selects absent field",
					"type", t.Name(), "field", s.Name)
				result[alias] = nil
				continue
			}

			value, err := fd.Resolve(source)
			if err != nil {
				errs = append(errs, Error{Message: err.Error(), Path: fieldPath})
				result[alias] = nil
				continue
			}

			if fd.Type.Kind == stitch.KindComplexObject {
				nested, nestedErrs := e.resolveObject(ctx, doc, fd, s.SelectionSet, value, fieldPath)
				result[alias] = nested
				errs = append(errs, nestedErrs...)
			} else {
				result[alias] = value
			}

		case *ast.FragmentSpread:
			frag := doc.Fragments.ForName(s.Name)
			if frag == nil {
				errs = append(errs, Error{Message: fmt.Sprintf("fragment %q not defined", s.Name), Path: path})
				continue
			}
			sub, subErrs := e.resolveSelectionSet(ctx, doc, t, frag.SelectionSet, source, path)
			mergeResult(result, sub)
			errs = append(errs, subErrs...)

		case *ast.InlineFragment:
			sub, subErrs := e.resolveSelectionSet(ctx, doc, t, s.SelectionSet, source, path)
			mergeResult(result, sub)
			errs = append(errs, subErrs...)
		}
	}

	return result, errs
}

// resolveObject resolves a complex field's sub-selection against the raw
// nested payload its resolver extracted: an object, or an array of objects
// for list fields. Null payloads short-circuit to null.
func (e *Executor) resolveObject(ctx context.Context, doc *ast.QueryDocument, fd stitch.FieldDef, selections ast.SelectionSet, value interface{}, path []interface{}) (interface{}, []Error) {
	if value == nil {
		return nil, nil
	}
	if len(selections) == 0 {
		return nil, []Error{{Message: fmt.Sprintf("field %q of type %s requires a selection set", fd.Name, fd.Type.LeafTypeName), Path: path}}
	}

	if fd.Type.IsList {
		items, ok := value.([]interface{})
		if !ok {
			return nil, []Error{{Message: fmt.Sprintf("field %q: expected array, got %T", fd.Name, value), Path: path}}
		}
		out := make([]interface{}, len(items))
		var errs []Error
		for i, item := range items {
			if item == nil {
				continue
			}
			obj, ok := item.(map[string]interface{})
			if !ok {
				errs = append(errs, Error{Message: fmt.Sprintf("field %q[%d]: expected object, got %T", fd.Name, i, item), Path: appendPath(path, i)})
				continue
			}
			sub, subErrs := e.resolveSelectionSet(ctx, doc, fd.Object, selections, obj, appendPath(path, i))
			out[i] = sub
			errs = append(errs, subErrs...)
		}
		return out, errs
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, []Error{{Message: fmt.Sprintf("field %q: expected object, got %T", fd.Name, value), Path: path}}
	}
	return e.resolveSelectionSet(ctx, doc, fd.Object, selections, obj, path)
}

// appendPath copies path with elem appended, so sibling fields do not share
// backing arrays.
func appendPath(path []interface{}, elem interface{}) []interface{} {
	out := make([]interface{}, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func mergeResult(dst, src map[string]interface{}) {
	for k, v := range src {
		dst[k] = v
	}
}
