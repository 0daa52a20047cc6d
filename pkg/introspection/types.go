package introspection

// Type kind strings as they appear in an introspection response.
const (
	KindScalar      = "SCALAR"
	KindObject      = "OBJECT"
	KindInterface   = "INTERFACE"
	KindUnion       = "UNION"
	KindEnum        = "ENUM"
	KindInputObject = "INPUT_OBJECT"
	KindList        = "LIST"
	KindNonNull     = "NON_NULL"
)

// TypeRef is a raw introspected type reference. NON_NULL and LIST kinds wrap
// another TypeRef via OfType; the chain terminates in a named kind.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// Field is one field of an introspected object type.
type Field struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`
}

// Type is one type descriptor from an introspection response.
type Type struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields,omitempty"`
}

// RootType names one of the schema's root operation types.
type RootType struct {
	Name string `json:"name"`
}

// Schema is the structured schema description of one remote endpoint: the
// full set of type descriptors returned by introspecting it. A Schema is
// immutable after fetch and safe for concurrent readers.
type Schema struct {
	QueryType        *RootType `json:"queryType"`
	MutationType     *RootType `json:"mutationType,omitempty"`
	SubscriptionType *RootType `json:"subscriptionType,omitempty"`
	Types            []Type    `json:"types"`

	byName map[string]*Type
}

// index builds the name lookup map. Called once by the fetcher before the
// schema is shared.
func (s *Schema) index() {
	s.byName = make(map[string]*Type, len(s.Types))
	for i := range s.Types {
		s.byName[s.Types[i].Name] = &s.Types[i]
	}
}

// TypeByName returns the type descriptor with the given name, or nil if the
// schema does not define it.
func (s *Schema) TypeByName(name string) *Type {
	if s.byName != nil {
		return s.byName[name]
	}
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i]
		}
	}
	return nil
}

// QueryTypeName returns the name of the schema's root query type, or "" if
// the schema does not declare one.
func (s *Schema) QueryTypeName() string {
	if s.QueryType == nil {
		return ""
	}
	return s.QueryType.Name
}

// response is the introspection response envelope: {"data": {"__schema": ...}}.
type response struct {
	Data *responseData `json:"data"`
}

type responseData struct {
	Schema *Schema `json:"__schema"`
}
