package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Graph structural errors (build/order time).
const (
	// ErrCodeGraphUnknownNode indicates an edge references a node that does not exist.
	ErrCodeGraphUnknownNode ErrorCode = "GRAPH_UNKNOWN_NODE"
	// ErrCodeGraphDuplicateNode indicates two nodes share the same name.
	ErrCodeGraphDuplicateNode ErrorCode = "GRAPH_DUPLICATE_NODE"
	// ErrCodeGraphInvalidNodeName indicates a node name that cannot appear
	// in edge references.
	ErrCodeGraphInvalidNodeName ErrorCode = "GRAPH_INVALID_NODE_NAME"
	// ErrCodeGraphDuplicateTargetInput indicates a node declares more than one target-input edge.
	ErrCodeGraphDuplicateTargetInput ErrorCode = "GRAPH_DUPLICATE_TARGET_INPUT"
	// ErrCodeGraphInvalidEdge indicates an edge reference could not be parsed.
	ErrCodeGraphInvalidEdge ErrorCode = "GRAPH_INVALID_EDGE"
	// ErrCodeGraphInvalidTargetRef indicates a ".y" reference to a node that
	// does not produce a target output.
	ErrCodeGraphInvalidTargetRef ErrorCode = "GRAPH_INVALID_TARGET_REF"
	// ErrCodeGraphCycle indicates the dependency relation contains a cycle.
	ErrCodeGraphCycle ErrorCode = "GRAPH_CYCLE"
	// ErrCodeGraphNoTerminus indicates every node is consumed by another node.
	ErrCodeGraphNoTerminus ErrorCode = "GRAPH_NO_TERMINUS"
	// ErrCodeGraphMultipleTerminus indicates more than one node has no consumer.
	ErrCodeGraphMultipleTerminus ErrorCode = "GRAPH_MULTIPLE_TERMINUS"
	// ErrCodeGraphNonTerminalEstimator indicates a ".x" reference to a node
	// whose component produces no feature output.
	ErrCodeGraphNonTerminalEstimator ErrorCode = "GRAPH_NONTERMINAL_ESTIMATOR"
)

// Instantiation errors.
const (
	// ErrCodeGraphNotInstantiated indicates an execution method was invoked
	// before Instantiate.
	ErrCodeGraphNotInstantiated ErrorCode = "GRAPH_NOT_INSTANTIATED"
	// ErrCodeUnknownNodeParams indicates a parameter bundle references an
	// unknown node name.
	ErrCodeUnknownNodeParams ErrorCode = "PIPELINE_UNKNOWN_NODE_PARAMS"
	// ErrCodeComponentUnknown indicates a component identifier is not registered.
	ErrCodeComponentUnknown ErrorCode = "COMPONENT_UNKNOWN"
	// ErrCodeComponentInvalidParams indicates a component rejected its parameters.
	ErrCodeComponentInvalidParams ErrorCode = "COMPONENT_INVALID_PARAMS"
	// ErrCodeComponentNotFitted indicates transform/predict was invoked on a
	// component before its Fit.
	ErrCodeComponentNotFitted ErrorCode = "COMPONENT_NOT_FITTED"
)

// Execution-ordering errors.
const (
	// ErrCodeGraphNotFitted indicates transform/predict was invoked before fit.
	ErrCodeGraphNotFitted ErrorCode = "GRAPH_NOT_FITTED"
	// ErrCodeMethodNotSupported indicates the graph terminus lacks the
	// capability required by the invoked method.
	ErrCodeMethodNotSupported ErrorCode = "METHOD_NOT_SUPPORTED"
)

// General errors.
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Graph construction and execution are deterministic: retrying with the same
// input cannot change the outcome, so no pipeline error code is retryable.
var retryableCodes = map[ErrorCode]bool{}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
