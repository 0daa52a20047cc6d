package stitch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// ResolverFunc extracts one field's value from an execution-time source
// object. The source is the semi-structured payload (parsed JSON) the host
// engine passes when executing a query; its keys match remote field names.
type ResolverFunc func(source map[string]interface{}) (interface{}, error)

// FieldDef is one locally usable field of a remote-backed type.
type FieldDef struct {
	// Name is the field's remote name, unchanged.
	Name string
	// Type is the field's resolved semantic type.
	Type TypeDescriptor
	// Object is the remote-backed type producing this field's nested
	// values. Nil for scalar fields.
	Object *RemoteType
	// Resolve extracts the field's value from a source payload.
	Resolve ResolverFunc
}

// translateFields produces the local field definitions for one introspected
// object type. Output order matches input order; no renaming or
// deduplication is performed. Fields whose type resolves to KindUnknown are
// elided without error. Complex fields reference their nested type through
// the registry, which creates it lazily without resolving its own fields.
func translateFields(reg *Registry, t *introspection.Type) []FieldDef {
	defs := make([]FieldDef, 0, len(t.Fields))
	for i := range t.Fields {
		f := &t.Fields[i]
		desc := ResolveTypeRef(&f.Type)
		switch desc.Kind {
		case KindUnknown:
			// Unresolvable kinds (custom scalars, unions, interfaces) are
			// not handled; the field is dropped from the local type.
			reg.logger.Debug("dropping unresolvable field",
				"endpoint", reg.endpoint.Identifier(),
				"type", t.Name,
				"field", f.Name,
				"remoteType", desc.LeafTypeName)
		case KindComplexObject:
			defs = append(defs, FieldDef{
				Name:    f.Name,
				Type:    desc,
				Object:  reg.GetOrCreate(desc.LeafTypeName),
				Resolve: objectResolver(f.Name),
			})
		default:
			defs = append(defs, FieldDef{
				Name:    f.Name,
				Type:    desc,
				Resolve: scalarResolver(f.Name, desc),
			})
		}
	}
	return defs
}

// objectResolver extracts the raw nested payload (object or array of
// objects) under name, for forwarding to the nested type's own resolvers.
// No recursion into the nested type's fields happens here.
func objectResolver(name string) ResolverFunc {
	return func(source map[string]interface{}) (interface{}, error) {
		if source == nil {
			return nil, nil
		}
		return source[name], nil
	}
}

// scalarResolver extracts the value under name and coerces it to the
// field's semantic scalar type, element-wise for list fields. Missing keys
// and JSON nulls resolve to nil without error.
func scalarResolver(name string, desc TypeDescriptor) ResolverFunc {
	return func(source map[string]interface{}) (interface{}, error) {
		if source == nil {
			return nil, nil
		}
		raw, ok := source[name]
		if !ok || raw == nil {
			return nil, nil
		}

		if desc.IsList {
			items, ok := raw.([]interface{})
			if !ok {
				return nil, fmt.Errorf("field %s: expected array, got %T", name, raw)
			}
			out := make([]interface{}, len(items))
			for i, item := range items {
				v, err := coerceScalar(desc.Kind, item)
				if err != nil {
					return nil, fmt.Errorf("field %s[%d]: %w", name, i, err)
				}
				out[i] = v
			}
			return out, nil
		}

		v, err := coerceScalar(desc.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		return v, nil
	}
}

// coerceScalar converts a payload value to its semantic scalar type. Payload
// values come from parsed JSON, so numbers may arrive as float64 or int64
// depending on the parser.
func coerceScalar(kind Kind, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}

	switch kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil

	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", raw)
		}
		return b, nil

	case KindInt, KindLong:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case float64:
			return int64(v), nil
		case string:
			// Decimal/Long values are commonly serialized as strings to
			// survive double-precision transports.
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("expected integer, got %T", raw)
		}

	case KindFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("expected float, got %q", v)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("expected float, got %T", raw)
		}

	case KindGuid:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected ID string, got %T", raw)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			// Remote IDs are not required to be UUIDs; pass opaque IDs
			// through unchanged.
			return s, nil
		}
		return id.String(), nil

	case KindDateTime:
		switch v := raw.(type) {
		case string:
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("expected RFC 3339 timestamp, got %q", v)
			}
			return ts, nil
		case time.Time:
			return v, nil
		default:
			return nil, fmt.Errorf("expected timestamp, got %T", raw)
		}

	default:
		return nil, fmt.Errorf("cannot coerce kind %s", kind)
	}
}
