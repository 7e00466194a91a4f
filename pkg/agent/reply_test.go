package agent

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped newline", `Hello\nWorld`, "Hello\nWorld"},
		{"multiple escaped newlines", `a\nb\nc`, "a\nb\nc"},
		{"wrapping quotes", `"quoted text"`, "quoted text"},
		{"nested quotes stripped once", `"nested "quotes""`, `nested "quotes"`},
		{"double wrapped keeps inner pair", `""twice""`, `"twice"`},
		{"quotes and newlines", `"line one\nline two"`, "line one\nline two"},
		{"only leading quote", `"open`, `"open`},
		{"only trailing quote", `close"`, `close"`},
		{"single quote char", `"`, ""},
		{"empty quoted", `""`, ""},
		{"plain", "plain text", "plain text"},
		{"real newline untouched", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "reply present",
			body: `{"outputs":[{"outputs":[{"messages":[{"message":"Hi there"}]}]}]}`,
			want: "Hi there",
		},
		{
			name: "first entries only",
			body: `{"outputs":[{"outputs":[{"messages":[{"message":"first"},{"message":"second"}]},{"messages":[{"message":"other"}]}]}]}`,
			want: "first",
		},
		{
			name:    "missing outputs",
			body:    `{"result":"ok"}`,
			wantErr: true,
		},
		{
			name:    "empty messages",
			body:    `{"outputs":[{"outputs":[{"messages":[]}]}]}`,
			wantErr: true,
		},
		{
			name:    "empty message",
			body:    `{"outputs":[{"outputs":[{"messages":[{"message":""}]}]}]}`,
			wantErr: true,
		},
		{
			name:    "non string message",
			body:    `{"outputs":[{"outputs":[{"messages":[{"message":{"text":"hi"}}]}]}]}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `{"outputs":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractReply([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrUnexpectedShape) {
					t.Fatalf("Expected ErrUnexpectedShape, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractReply() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractReply() = %q, want %q", got, tt.want)
			}
		})
	}
}
