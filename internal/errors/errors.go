package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeConnection ErrorType = "connection_failed"
	ErrorTypeNoData     ErrorType = "no_structured_data"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeTimeout    ErrorType = "timeout"
)

const (
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeNoStructuredData = "NO_STRUCTURED_DATA"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// URL returns the page URL attached to the error, if any
func (e *AppError) URL() string {
	u, _ := e.Context["url"].(string)
	return u
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return newAt(2, nil, errorType, code, message)
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return newAt(2, err, errorType, code, message)
}

func newAt(skip int, err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(skip)
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.handleGenericError(ctx, err)
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeNoData:
		h.logger.WarnContext(ctx, "Import rejected", err.LogFields()...)
	case ErrorTypeConnection:
		h.logger.WarnContext(ctx, "Page fetch failed", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeInternal, ErrorTypeTimeout:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

func (h *Handler) handleGenericError(ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
}

// LogAndReturn logs an error and returns it
func (h *Handler) LogAndReturn(ctx context.Context, err error) error {
	h.Handle(ctx, err)
	return err
}

// Predefined errors, usable as errors.Is targets
var (
	ErrConnectionFailed = New(ErrorTypeConnection, CodeConnectionFailed, "Could not fetch page")
	ErrNoStructuredData = New(ErrorTypeNoData, CodeNoStructuredData, "No structured recipe data found")
)

// NewConnectionFailedError reports a transport failure or a non-success status
// while fetching url.
func NewConnectionFailedError(url, detail string, err error) *AppError {
	return newAt(2, err, ErrorTypeConnection, CodeConnectionFailed, fmt.Sprintf("failed to fetch %s: %s", url, detail)).
		WithContext("url", url).
		WithContext("detail", detail)
}

// NewNoStructuredDataError reports that url has no usable recipe markup
func NewNoStructuredDataError(url string) *AppError {
	return newAt(2, nil, ErrorTypeNoData, CodeNoStructuredData, fmt.Sprintf("no structured recipe data found at %s", url)).
		WithContext("url", url)
}

func NewValidationError(message string) *AppError {
	return newAt(2, nil, ErrorTypeValidation, "VALIDATION", message)
}

func NewDatabaseError(err error) *AppError {
	return newAt(2, err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

// IsType reports whether err wraps an AppError of type t
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsConnectionFailed reports whether err is a page fetch failure
func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsNoStructuredData reports whether err is a missing-markup failure
func IsNoStructuredData(err error) bool {
	return errors.Is(err, ErrNoStructuredData)
}

// UserMessage maps an import error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConnectionFailed(err):
		return "Could not reach that page. Please check the link and try again."
	case IsNoStructuredData(err):
		return "No recipe data was found on that page."
	default:
		return "Something went wrong while importing the recipe. Please try again later."
	}
}
