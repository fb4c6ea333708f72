package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptLineTrimsInput(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  hello world \n"))
	var out bytes.Buffer
	got, err := promptLine(in, "Name: ", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name: " {
		t.Fatalf("prompt not written, got %q", out.String())
	}
}

func TestPromptLineReturnsPartialLineAtEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := promptLine(in, "> ", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestPromptLineErrorsOnBareEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	if _, err := promptLine(in, "> ", &out); err == nil {
		t.Fatalf("expected an error on empty input")
	}
}

func TestPromptPasswordUsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func() ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := promptPassword("Password: ", &out)
	if err != nil || got != "s3cret" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Password: ") {
		t.Fatalf("prompt not written, got %q", out.String())
	}
}

func TestValidDate(t *testing.T) {
	if !validDate("2025-01-31") {
		t.Fatalf("2025-01-31 should be valid")
	}
	for _, bad := range []string{"2025-13-01", "31-01-2025", "2025-02-30", "yesterday", ""} {
		if validDate(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
