// Package errors provides unified error handling for the automl library.
// It implements structured error types with machine-readable codes, HTTP
// status mapping for callers that serve pipelines behind an API, and
// retryable detection.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Graph structural errors ---

// graphStructure builds a structural error for a violated graph rule.
func graphStructure(code ErrorCode, message string) *AppError {
	return &AppError{
		Code: code, Message: message,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
	}
}

// UnknownNode creates an error for an edge referencing an undeclared node.
func UnknownNode(node, ref string) *AppError {
	return graphStructure(ErrCodeGraphUnknownNode,
		fmt.Sprintf("node %q references unknown node %q", node, ref)).
		WithDetails(map[string]any{"node": node, "reference": ref})
}

// InvalidNodeName creates an error for a node name that cannot be used in
// edge references.
func InvalidNodeName(node, reason string) *AppError {
	return graphStructure(ErrCodeGraphInvalidNodeName,
		fmt.Sprintf("invalid node name %q: %s", node, reason)).
		WithDetail("node", node)
}

// DuplicateNode creates an error for a node name collision.
func DuplicateNode(node string) *AppError {
	return graphStructure(ErrCodeGraphDuplicateNode,
		fmt.Sprintf("duplicate node name %q", node)).
		WithDetail("node", node)
}

// DuplicateTargetInput creates an error for a node with more than one target edge.
func DuplicateTargetInput(node string, refs []string) *AppError {
	return graphStructure(ErrCodeGraphDuplicateTargetInput,
		fmt.Sprintf("node %q declares %d target inputs (%s), at most one is allowed",
			node, len(refs), strings.Join(refs, ", "))).
		WithDetails(map[string]any{"node": node, "references": refs})
}

// InvalidEdge creates an error for an unparseable edge reference.
func InvalidEdge(node, ref string) *AppError {
	return graphStructure(ErrCodeGraphInvalidEdge,
		fmt.Sprintf("node %q has invalid edge reference %q", node, ref)).
		WithDetails(map[string]any{"node": node, "reference": ref})
}

// InvalidTargetRef creates an error for a ".y" reference to a node that
// produces no target output.
func InvalidTargetRef(node, producer string) *AppError {
	return graphStructure(ErrCodeGraphInvalidTargetRef,
		fmt.Sprintf("node %q references %q as target source, but %q does not produce a target output",
			node, producer+".y", producer)).
		WithDetails(map[string]any{"node": node, "producer": producer})
}

// Cycle creates an error for a cyclic dependency among the given nodes.
func Cycle(nodes []string) *AppError {
	return graphStructure(ErrCodeGraphCycle,
		fmt.Sprintf("graph contains a cycle involving: %s", strings.Join(nodes, ", "))).
		WithDetail("nodes", nodes)
}

// NoTerminus creates an error for a graph where every node has a consumer.
func NoTerminus() *AppError {
	return graphStructure(ErrCodeGraphNoTerminus, "graph has no terminus node")
}

// MultipleTerminus creates an error naming the competing terminus nodes.
func MultipleTerminus(nodes []string) *AppError {
	return graphStructure(ErrCodeGraphMultipleTerminus,
		fmt.Sprintf("graph has %d terminus nodes: %s", len(nodes), strings.Join(nodes, ", "))).
		WithDetail("nodes", nodes)
}

// NonTerminalEstimator creates an error for a ".x" reference to a node whose
// component produces no feature output.
func NonTerminalEstimator(node, producer string) *AppError {
	return graphStructure(ErrCodeGraphNonTerminalEstimator,
		fmt.Sprintf("node %q consumes %q, but %q is an estimator and produces no feature output",
			node, producer+".x", producer)).
		WithDetails(map[string]any{"node": node, "producer": producer})
}

// --- Instantiation errors ---

// NotInstantiated creates an error for an execution method called before Instantiate.
func NotInstantiated(operation string) *AppError {
	return &AppError{
		Code:       ErrCodeGraphNotInstantiated,
		Message:    fmt.Sprintf("cannot %s: graph has not been instantiated", operation),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
}

// UnknownNodeParams creates an error for a parameter bundle naming an unknown node.
func UnknownNodeParams(node string) *AppError {
	return &AppError{
		Code:       ErrCodeUnknownNodeParams,
		Message:    fmt.Sprintf("parameter bundle references unknown node %q", node),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"node": node},
	}
}

// ComponentUnknown creates an error for an unregistered component identifier.
func ComponentUnknown(name string) *AppError {
	return &AppError{
		Code:       ErrCodeComponentUnknown,
		Message:    fmt.Sprintf("component %q is not registered", name),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"component": name},
	}
}

// ComponentInvalidParams creates an error for a component rejecting its parameters.
func ComponentInvalidParams(component, reason string) *AppError {
	return &AppError{
		Code:       ErrCodeComponentInvalidParams,
		Message:    fmt.Sprintf("invalid parameters for component %q: %s", component, reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"component": component},
	}
}

// ComponentNotFitted creates an error for a component used before its Fit.
func ComponentNotFitted(component, operation string) *AppError {
	return &AppError{
		Code:       ErrCodeComponentNotFitted,
		Message:    fmt.Sprintf("cannot %s: component %q has not been fitted", operation, component),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"component": component, "operation": operation},
	}
}

// --- Execution-ordering errors ---

// NotFitted creates an error for transform/predict called before fit.
func NotFitted(operation string) *AppError {
	return &AppError{
		Code:       ErrCodeGraphNotFitted,
		Message:    fmt.Sprintf("cannot %s: graph has not been fitted", operation),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
}

// MethodNotSupported creates an error for a method the terminus cannot serve.
func MethodNotSupported(operation, terminus, capability string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotSupported,
		Message: fmt.Sprintf("cannot %s: terminus node %q does not support %s",
			operation, terminus, capability),
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"operation": operation, "terminus": terminus},
	}
}

// --- General constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates a new AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
