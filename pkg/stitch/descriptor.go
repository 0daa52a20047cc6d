package stitch

import (
	"github.com/getstitchd/stitchd/pkg/introspection"
)

// Kind is the local semantic kind of a resolved remote type.
type Kind int

// Semantic kinds. KindUnknown is terminal: a field resolving to it is
// dropped from the local type.
const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindString
	KindBoolean
	KindGuid
	KindDateTime
	KindLong
	KindComplexObject
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindGuid:
		return "Guid"
	case KindDateTime:
		return "DateTime"
	case KindLong:
		return "Long"
	case KindComplexObject:
		return "ComplexObject"
	default:
		return "Unknown"
	}
}

// scalarKinds maps remote scalar names to local semantic kinds. The table is
// fixed: scalars outside it resolve to KindUnknown. No custom-scalar
// extensibility is offered; this is a documented limitation of the engine.
var scalarKinds = map[string]Kind{
	"Int":     KindInt,
	"Float":   KindFloat,
	"String":  KindString,
	"Boolean": KindBoolean,
	"ID":      KindGuid,
	"Date":    KindDateTime,
	"Decimal": KindLong,
}

// TypeDescriptor is the normalized, wrapper-free form of an introspected
// type reference.
type TypeDescriptor struct {
	// Kind is the semantic kind of the innermost named type.
	Kind Kind
	// LeafTypeName is the remote name of the innermost named type.
	LeafTypeName string
	// IsList reports whether a LIST wrapper appeared anywhere in the
	// reference chain.
	IsList bool
}

// ResolveTypeRef recursively flattens a raw introspected type reference into
// a TypeDescriptor. NON_NULL wrappers are unwrapped and discarded
// (nullability is not modeled locally); LIST wrappers are unwrapped and
// recorded in IsList. Interface, union, enum, and input-object kinds resolve
// to KindUnknown, as do scalars outside the fixed mapping table.
func ResolveTypeRef(ref *introspection.TypeRef) TypeDescriptor {
	if ref == nil {
		return TypeDescriptor{Kind: KindUnknown}
	}

	switch ref.Kind {
	case introspection.KindNonNull:
		return ResolveTypeRef(ref.OfType)
	case introspection.KindList:
		desc := ResolveTypeRef(ref.OfType)
		desc.IsList = true
		return desc
	case introspection.KindScalar:
		kind, ok := scalarKinds[ref.Name]
		if !ok {
			return TypeDescriptor{Kind: KindUnknown, LeafTypeName: ref.Name}
		}
		return TypeDescriptor{Kind: kind, LeafTypeName: ref.Name}
	case introspection.KindObject:
		return TypeDescriptor{Kind: KindComplexObject, LeafTypeName: ref.Name}
	default:
		return TypeDescriptor{Kind: KindUnknown, LeafTypeName: ref.Name}
	}
}
