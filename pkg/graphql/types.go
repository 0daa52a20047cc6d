package graphql

// Request represents an incoming GraphQL request.
type Request struct {
	// Query is the GraphQL query string.
	Query string `json:"query"`
	// OperationName is the name of the operation to execute (for
	// multi-operation documents).
	OperationName string `json:"operationName,omitempty"`
	// Variables are the variable values for the query. They are carried
	// through to the upstream service; local execution does not use them.
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Response represents a GraphQL response.
type Response struct {
	// Data contains the result of the query execution.
	Data interface{} `json:"data,omitempty"`
	// Errors contains any errors that occurred during execution.
	Errors []Error `json:"errors,omitempty"`
}

// Error represents a GraphQL error in the response format.
type Error struct {
	// Message is the error message.
	Message string `json:"message"`
	// Path is the response field path where the error occurred.
	Path []interface{} `json:"path,omitempty"`
}
