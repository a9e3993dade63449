// Package errs defines custom error types and utilities.
//
// Its purpose is to give API clients meaningful, actionable and consistent
// error responses:
//
//   - Return consistent error shapes to API clients (JSON).
//   - Support field-level validation errors for forms.
//   - Carry the localized notification the client should display.
//   - Support "action hints" (like redirect) that frontends can interpret.
//   - Play nicely with Go's standard errors package.
package errs

import (
	"strings"

	"github.com/deppfellow/agro-backend/internal/notify"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "cnpj", "error": "must be a valid CNPJ" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "LAVOURA_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message verbatim.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction (optional).
//   - Notification: localized toast carrying the underlying message (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
	Action *Action      `json:"action"`

	Notification *notify.Notification `json:"notification,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithNotification returns a copy of this HTTPError carrying n.
func (e *HTTPError) WithNotification(n *notify.Notification) *HTTPError {
	clone := *e
	clone.Notification = n
	return &clone
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
