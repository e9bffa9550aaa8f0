package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindStatus, "unexpected status"},
		{KindMalformed, "malformed payload"},
		{KindConfig, "configuration error"},
		{KindCanceled, "canceled"},
		{KindBusy, "busy"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name        string
		args        []interface{}
		wantOp      Op
		wantKind    Kind
		wantContext string
	}{
		{
			name:        "with all args",
			args:        []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:      "test.Op",
			wantKind:    KindNotFound,
			wantContext: "context",
		},
		{
			name:        "context becomes the error when no error is given",
			args:        []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:      "test.Op",
			wantKind:    KindInvalid,
			wantContext: "",
		},
		{
			name:     "with just error",
			args:     []interface{}{errors.New("simple error")},
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Context != tt.wantContext {
				t.Errorf("E().Context = %q, want %q", e.Context, tt.wantContext)
			}
			if e.Err == nil {
				t.Error("E().Err should never be nil")
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{"matching kind", E(Op("test"), KindNetwork, "offline"), KindNetwork, true},
		{"non-matching kind", E(Op("test"), KindNetwork, "offline"), KindStatus, false},
		{"plain error", errors.New("regular error"), KindNetwork, false},
		{"wrapped structured error", fmt.Errorf("outer: %w", E(Op("test"), KindMalformed, "bad json")), KindMalformed, true},
		{"nil error", nil, KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want KindUnknown", got)
	}
	if got := GetKind(E(Op("x"), KindCanceled, "stop")); got != KindCanceled {
		t.Errorf("GetKind() = %v, want KindCanceled", got)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name        string
		err         error
		kind        Kind
		msgContains string
	}{
		{"transport", TransportFailed("http://host/generate", cause), KindNetwork, "http://host/generate"},
		{"status with snippet", BadStatus(502, "bad gateway"), KindStatus, "status 502: bad gateway"},
		{"status without snippet", BadStatus(500, ""), KindStatus, "status 500"},
		{"malformed with cause", MalformedPayload("invalid JSON", cause), KindMalformed, "invalid JSON"},
		{"malformed without cause", MalformedPayload("missing generated_image", nil), KindMalformed, "missing generated_image"},
		{"canceled", RequestCanceled(cause), KindCanceled, "request canceled"},
		{"busy", AlreadyGenerating(), KindBusy, "already in flight"},
		{"sketch empty", SketchEmpty("a.png"), KindInvalid, "a.png is empty"},
		{"sketch read", SketchReadFailed("a.png", cause), KindIO, "failed to read a.png"},
		{"ref not found", RefNotFound("blob:sketchlab/1"), KindNotFound, "blob:sketchlab/1"},
		{"download", DownloadFailed("out.png", cause), KindIO, "out.png"},
		{"config load", ConfigLoadFailed("/cfg.json", cause), KindConfig, "/cfg.json"},
		{"config save", ConfigSaveFailed("/cfg.json", cause), KindConfig, "/cfg.json"},
		{"config invalid", ConfigInvalid("endpoint missing"), KindInvalid, "endpoint missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("expected kind %v, got %v", tt.kind, GetKind(tt.err))
			}
			if !strings.Contains(tt.err.Error(), tt.msgContains) {
				t.Errorf("error %q should contain %q", tt.err.Error(), tt.msgContains)
			}
		})
	}

	if !errors.Is(TransportFailed("x", cause), cause) {
		t.Error("TransportFailed should wrap its cause")
	}
}
