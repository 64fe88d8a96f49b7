package logger

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"production", "development", ""} {
		l, err := New(env, "debug")
		if err != nil {
			t.Fatalf("env=%q: unexpected err: %v", env, err)
		}
		if l == nil {
			t.Fatalf("env=%q: nil logger", env)
		}
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	l, err := New("development", "chatty")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if l.Core().Enabled(-1) {
		t.Fatalf("expected debug to be disabled")
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "hello", limit: 0, expect: ""},
		{name: "shorter than limit", input: "hello", limit: 10, expect: "hello"},
		{name: "truncates", input: "hello world", limit: 5, expect: "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
