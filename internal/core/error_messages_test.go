package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "import failure hides its cause",
			err:         fmt.Errorf("%w: read: %w", ErrImportFailed, errors.New("connection reset by peer")),
			wantCode:    "FILE001",
			wantMessage: "import failed, verify file format/encoding",
		},
		{
			name:        "oversize import is still an import failure",
			err:         fmt.Errorf("%w: file too large (limit 10 bytes)", ErrImportFailed),
			wantCode:    "FILE001",
			wantMessage: "import failed, verify file format/encoding",
		},
		{
			name:        "http body limit",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE002",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "missing form file",
			err:         errors.New("no file provided"),
			wantCode:    "FILE003",
			wantMessage: "No file was selected",
		},
		{
			name:        "limiter full",
			err:         ErrTooManyImports,
			wantCode:    "IMP001",
			wantMessage: "System is busy processing other imports",
		},
		{
			name:        "cancelled request",
			err:         context.Canceled,
			wantCode:    "IMP002",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "unknown stock id",
			err:         fmt.Errorf("set stock: unknown item %q", "cookie"),
			wantCode:    "VAL001",
			wantMessage: "Stock was sent for an item that is not on the sheet",
		},
		{
			name:        "sqlite busy",
			err:         errors.New("save state: database is locked (5) (SQLITE_BUSY)"),
			wantCode:    "DB004",
			wantMessage: "State store is busy",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("dial tcp: CONNECTION REFUSED"),
			wantCode:    "DB001",
			wantMessage: "Unable to connect to the state store",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(errors.New("rate limit exceeded"))
	want := "Too many requests (Code: RATE001). Please wait a moment before trying again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"import failure is user facing", ErrImportFailed, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("%w: read: unexpected EOF", ErrImportFailed)
		userErr := NewUserError(techErr)

		if userErr.Error() != ErrImportFailed.Error() {
			t.Errorf("Error() = %q, want %q", userErr.Error(), ErrImportFailed.Error())
		}
		if !errors.Is(userErr, ErrImportFailed) {
			t.Error("Unwrap() should expose the original error")
		}
	})
}
