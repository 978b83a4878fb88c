package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeInvalidSize, "width must be positive, got %g", -1.0)
	if got, want := err.Error(), "INVALID_SIZE: width must be positive, got -1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("rsvg-convert not found")
	wrapped := Wrap(ErrCodeSurface, cause, "convert %s", "pdf")
	if got, want := wrapped.Error(), "SURFACE_ERROR: convert pdf: rsvg-convert not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}
}

func TestCodeHelpers(t *testing.T) {
	plain := errors.New("plain")
	scene := New(ErrCodeInvalidScene, "root.children[1]: unknown type")

	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", scene, ErrCodeInvalidScene, "root.children[1]: unknown type"},
		{"fmt wrapped", fmt.Errorf("scene.toml: %w", scene), ErrCodeInvalidScene, "root.children[1]: unknown type"},
		{"outer code wins", Wrap(ErrCodeProtocol, scene, "layout aborted"), ErrCodeProtocol, "layout aborted"},
		{"plain", plain, "", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeTimeout) {
				t.Error("Is(TIMEOUT) = true")
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}

	if Is(nil, ErrCodeInvalidInput) || GetCode(nil) != "" {
		t.Error("nil error reports a code")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidSize, "bad"), http.StatusBadRequest},
		{Wrap(ErrCodeInvalidScene, errors.New("x"), "bad"), http.StatusBadRequest},
		{New(ErrCodeProtocol, "nil body"), http.StatusUnprocessableEntity},
		{New(ErrCodeNotFound, "missing"), http.StatusNotFound},
		{New(ErrCodeTimeout, "canceled"), http.StatusGatewayTimeout},
		{New(ErrCodeUnsupported, "no rsvg"), http.StatusNotImplemented},
		{New(ErrCodeSurface, "too big"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
