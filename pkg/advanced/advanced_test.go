package advanced

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testInterpreter() *Interpreter {
	it := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	it.Handle('q', func(value string) (string, bool) {
		return "<q:" + value + ">", true
	})
	it.Handle('d', func(value string) (string, bool) {
		return "[1 to " + it.Expand(value) + "]", true
	})
	it.Handle('u', func(value string) (string, bool) {
		return "", false
	})
	return it
}

func TestExpand(t *testing.T) {
	it := testInterpreter()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tokens", "plain text, no brackets", "plain text, no brackets"},
		{"single token", "gain [q:102898]", "gain <q:102898>"},
		{"two tokens", "[q:1] and [q:2]", "<q:1> and <q:2>"},
		{"nested token", "gain [d:[q:100]]", "gain [1 to <q:100>]"},
		{"doubly nested", "[d:[d:[q:5]]]", "[1 to [1 to <q:5>]]"},
		{"unresolved value kept", "check [u:whatever] here", "check [u:whatever] here"},
		{"unknown key kept", "see [x:123] there", "see [x:123] there"},
		{"stray open bracket", "array[3] access", "array[3] access"},
		{"unterminated token", "broken [q:123", "broken [q:123"},
		{"empty string", "", ""},
		{"token at start", "[q:7] first", "<q:7> first"},
		{"token at end", "last [q:7]", "last <q:7>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := it.Expand(tt.in); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandSinglePass(t *testing.T) {
	it := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	// A handler whose output looks like another token must not be re-scanned.
	it.Handle('a', func(value string) (string, bool) {
		return "[a:" + value + "]", true
	})

	got := it.Expand("[a:x]")
	if got != "[a:x]" {
		t.Errorf("Expand re-scanned handler output: got %q", got)
	}
}

func TestExpandIdempotentWithoutTokens(t *testing.T) {
	it := testInterpreter()
	in := "text with ] stray close and [not-a-token] and [Q:3] uppercase"
	once := it.Expand(in)
	twice := it.Expand(once)
	if once != twice {
		t.Errorf("token-free expansion not idempotent: %q vs %q", once, twice)
	}
	if !strings.Contains(once, "[Q:3]") {
		t.Errorf("uppercase key should not be a token, got %q", once)
	}
}

func TestHandleReplacesHandler(t *testing.T) {
	it := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	it.Handle('q', func(string) (string, bool) { return "first", true })
	it.Handle('q', func(string) (string, bool) { return "second", true })

	if got := it.Expand("[q:1]"); got != "second" {
		t.Errorf("Expand = %q, want the replacement handler's output", got)
	}
}
