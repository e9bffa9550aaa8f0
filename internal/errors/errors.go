// Package errors provides structured error types for sketchlab.
// These errors record which operation failed and what kind of failure it was,
// so the generation flow can classify transport, status and payload problems.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindStatus
	KindMalformed
	KindConfig
	KindCanceled
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindStatus:
		return "unexpected status"
	case KindMalformed:
		return "malformed payload"
	case KindConfig:
		return "configuration error"
	case KindCanceled:
		return "canceled"
	case KindBusy:
		return "busy"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for sketchlab.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Generation errors

func TransportFailed(endpoint string, err error) error {
	return E(Op("generation.Generate"), KindNetwork, fmt.Sprintf("request to %s failed", endpoint), err)
}

func BadStatus(status int, snippet string) error {
	if snippet != "" {
		return E(Op("generation.Generate"), KindStatus, fmt.Sprintf("endpoint returned status %d: %s", status, snippet))
	}
	return E(Op("generation.Generate"), KindStatus, fmt.Sprintf("endpoint returned status %d", status))
}

func MalformedPayload(reason string, err error) error {
	if err == nil {
		return E(Op("generation.Generate"), KindMalformed, reason)
	}
	return E(Op("generation.Generate"), KindMalformed, reason, err)
}

func RequestCanceled(err error) error {
	return E(Op("generation.Generate"), KindCanceled, "request canceled", err)
}

func AlreadyGenerating() error {
	return E(Op("studio.Begin"), KindBusy, "a generation request is already in flight")
}

// Sketch errors

func SketchEmpty(path string) error {
	return E(Op("sketch.Load"), KindInvalid, fmt.Sprintf("%s is empty", path))
}

func SketchReadFailed(path string, err error) error {
	return E(Op("sketch.Load"), KindIO, fmt.Sprintf("failed to read %s", path), err)
}

// Reference and download errors

func RefNotFound(ref string) error {
	return E(Op("imageref.Resolve"), KindNotFound, fmt.Sprintf("reference %s is not held by this session", ref))
}

func DownloadFailed(filename string, err error) error {
	return E(Op("download.Save"), KindIO, fmt.Sprintf("failed to save %s", filename), err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
