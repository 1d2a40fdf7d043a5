package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to render")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNoRoot,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeMalformedChain, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeMalformedChain,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeAmbiguousRoot, "test"),
			expected: ErrCodeAmbiguousRoot,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantConfig bool
		wantFormat bool
	}{
		{"overrides", New(ErrCodeInvalidOverrides, "x"), true, false},
		{"config", New(ErrCodeInvalidConfig, "x"), true, false},
		{"no root", New(ErrCodeNoRoot, "x"), false, true},
		{"chain", New(ErrCodeMalformedChain, "x"), false, true},
		{"sort order", New(ErrCodeInvalidSortOrder, "x"), false, true},
		{"input", New(ErrCodeInvalidInput, "x"), false, false},
		{"hinted", WithHint(New(ErrCodeConflictingShape, "x"), "fix it"), false, true},
		{"plain", errors.New("x"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfig(tt.err); got != tt.wantConfig {
				t.Errorf("IsConfig() = %v, want %v", got, tt.wantConfig)
			}
			if got := IsFormat(tt.err); got != tt.wantFormat {
				t.Errorf("IsFormat() = %v, want %v", got, tt.wantFormat)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	base := New(ErrCodeNoRoot, "no root")
	err := WithHint(base, "add a result:this statement")
	err = WithHintf(err, "see %s", "docs")

	if !Is(err, ErrCodeNoRoot) {
		t.Error("Is(err, ErrCodeNoRoot) = false, want true")
	}
	if got := UserMessage(err); got != "no root" {
		t.Errorf("UserMessage() = %q, want %q", got, "no root")
	}

	hints := Hints(err)
	if len(hints) != 2 {
		t.Fatalf("Hints() = %v, want 2 hints", hints)
	}
	if flat := FlattenHints(err); flat == "" {
		t.Error("FlattenHints() returned empty string")
	}
}
