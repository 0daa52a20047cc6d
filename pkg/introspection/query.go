package introspection

// Query is the introspection document sent to remote endpoints. It is the
// standard introspection query trimmed to the parts the stitcher consumes:
// root type names plus every type's kind, name, and field type chains. The
// TypeRef fragment is nested to the conventional seven levels of ofType.
const Query = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      kind
      name
      fields(includeDeprecated: true) {
        name
        type {
          ...TypeRef
        }
      }
    }
  }
}
fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}`
