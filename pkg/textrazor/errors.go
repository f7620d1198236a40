// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a dynamic lookup for a key or rule name that does not
// exist in the response schema. It is distinct from a dangling reference,
// which leaves link lists empty without error.
var ErrNotFound = errors.New("not found")

// AnalysisError reports a request the service rejected: a transport failure
// (non-2xx status, connection error) or a management operation that returned
// ok=false. Analyze calls never return it for service-level failures; those
// surface on the Response itself.
type AnalysisError struct {
	// StatusCode is the HTTP status, 0 for connection failures and
	// service-level errors.
	StatusCode int
	Message    string
	Err        error
}

func (e *AnalysisError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("textrazor: HTTP %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("textrazor: %s: %v", e.Message, e.Err)
	default:
		return "textrazor: " + e.Message
	}
}

func (e *AnalysisError) Unwrap() error { return e.Err }
