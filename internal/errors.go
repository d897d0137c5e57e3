package internal

import "fmt"

// ParseError reports a malformed time, value, keyframe or mask token.
//
// It always names the offending token so the orchestration boundary can log
// and skip the string without losing context.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Token, e.Reason)
}

func newParseError(token, format string, args ...any) *ParseError {
	return &ParseError{Token: token, Reason: fmt.Sprintf(format, args...)}
}
