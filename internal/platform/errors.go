// Package platform defines the error family and shared conventions used
// across the hostsentry stats layer.
//
// Every "expected" failure in this module is an *Error with a Kind. Callers
// classify failures with errors.As + Kind rather than matching message text.
// Anything that is not an *Error is an unexpected failure and is allowed to
// propagate out of batch operations untouched.
package platform

import (
	"errors"
	"fmt"
)

// Kind identifies a failure condition, not a source line.
type Kind int

const (
	// KindUnknown is the zero value; it should not appear in practice.
	KindUnknown Kind = iota

	// KindSourceUnavailable: a required file could not be opened.
	// Extra carries the resolved path.
	KindSourceUnavailable

	// KindInternalParse: a present file or payload failed structural
	// parsing. Extra carries the underlying cause message.
	KindInternalParse

	// KindInvalidParams: a required argument was missing or empty.
	// Rejected before any I/O.
	KindInvalidParams

	// KindUnsupportedTarget: a structurally valid but semantically
	// disallowed request, e.g. asking the manager about its own agent
	// daemon.
	KindUnsupportedTarget

	// KindCannotConnect: the control socket could not be opened.
	KindCannotConnect

	// KindNoData: the control socket yielded no decodable response.
	KindNoData

	// KindDaemonError: the daemon answered with a well-formed error
	// envelope. Extra carries the daemon's message.
	KindDaemonError

	// KindResourceNotFound: an agent ID is not in the inventory.
	KindResourceNotFound
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source_unavailable"
	case KindInternalParse:
		return "internal_parse"
	case KindInvalidParams:
		return "invalid_params"
	case KindUnsupportedTarget:
		return "unsupported_target"
	case KindCannotConnect:
		return "cannot_connect"
	case KindNoData:
		return "no_data"
	case KindDaemonError:
		return "daemon_error"
	case KindResourceNotFound:
		return "resource_not_found"
	default:
		return "unknown"
	}
}

// Error is the platform's typed error. Message is the fixed description for
// the Kind; Extra is per-occurrence detail (a path, a cause, a daemon
// message). Cause, when set, is reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Extra   string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Extra != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Extra)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a platform *Error with the same Kind.
// This lets callers write errors.Is(err, &platform.Error{Kind: ...}).
func (e *Error) Is(target error) bool {
	var pe *Error
	if !errors.As(target, &pe) {
		return false
	}
	return pe.Kind == e.Kind
}

// SourceUnavailable reports that the file at path could not be opened.
func SourceUnavailable(path string) *Error {
	return &Error{
		Kind:    KindSourceUnavailable,
		Message: "stats data source could not be opened",
		Extra:   path,
	}
}

// InternalParse wraps a structural-parse failure on a present source.
func InternalParse(cause error) *Error {
	return &Error{
		Kind:    KindInternalParse,
		Message: "internal error parsing stats data",
		Extra:   cause.Error(),
		Cause:   cause,
	}
}

// InvalidParams reports a missing required argument.
func InvalidParams(detail string) *Error {
	return &Error{
		Kind:    KindInvalidParams,
		Message: "invalid parameters",
		Extra:   detail,
	}
}

// UnsupportedTarget reports a semantically disallowed request.
func UnsupportedTarget(detail string) *Error {
	return &Error{
		Kind:    KindUnsupportedTarget,
		Message: "operation not supported for this target",
		Extra:   detail,
	}
}

// CannotConnect reports a control-socket connection failure.
func CannotConnect(path string, cause error) *Error {
	return &Error{
		Kind:    KindCannotConnect,
		Message: "internal error: cannot connect to control socket",
		Extra:   path,
		Cause:   cause,
	}
}

// NoData reports that the control socket produced no decodable reply.
func NoData(detail string) *Error {
	return &Error{
		Kind:    KindNoData,
		Message: "internal error: no data received",
		Extra:   detail,
	}
}

// DaemonError surfaces an error envelope returned by a daemon.
func DaemonError(message string) *Error {
	return &Error{
		Kind:    KindDaemonError,
		Message: "daemon reported an error",
		Extra:   message,
	}
}

// ResourceNotFound reports an agent ID missing from the inventory.
func ResourceNotFound(agentID string) *Error {
	return &Error{
		Kind:    KindResourceNotFound,
		Message: "agent does not exist",
		Extra:   agentID,
	}
}

// IsPlatformError reports whether err belongs to the platform error family.
// Batch operations use this to decide whether a failure is recorded per-item
// or propagated.
func IsPlatformError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
