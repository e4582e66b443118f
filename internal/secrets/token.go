// Package secrets holds opaque credential values for the lifetime of a
// single run. Tokens are never persisted and never appear on a command line;
// they leave the process only via stdin or an environment variable override.
package secrets

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Redacted is what a Token renders as in logs and formatted output.
const Redacted = "[REDACTED]"

// Token is an opaque secret string supplied by the execution environment.
// The zero value is an empty token.
type Token struct {
	value string
}

// New wraps a raw secret value.
func New(value string) Token {
	return Token{value: value}
}

// FromEnv reads a token from the named environment variable. Surrounding
// whitespace is trimmed; an unset or blank variable yields an empty token.
func FromEnv(key string) Token {
	return New(strings.TrimSpace(os.Getenv(key)))
}

// Empty reports whether the token carries no value.
func (t Token) Empty() bool {
	return t.value == ""
}

// Reveal returns the raw secret value. Callers must only pass it to a child
// process via stdin or an environment variable, never as an argument.
func (t Token) Reveal() string {
	return t.value
}

// Reader returns a reader over the raw value, for piping to stdin.
func (t Token) Reader() io.Reader {
	return strings.NewReader(t.value)
}

// String implements fmt.Stringer and always redacts.
func (t Token) String() string {
	if t.Empty() {
		return ""
	}
	return Redacted
}

// Format redacts under every verb so a token cannot leak through %v, %s,
// %q, or %#v formatting.
func (t Token) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, t.String())
}

// MarshalText redacts, so a token embedded in a serialized struct never
// carries its value.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
