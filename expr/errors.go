package expr

import "fmt"

// Kind classifies why an expression failed to evaluate. The evaluator
// never panics and never returns a bare error type from the standard
// library — every failure is one of these kinds so hosts and tests can
// branch on it without string matching.
type Kind int

const (
	// MissingAttribute means the named key is not present in the request.
	MissingAttribute Kind = iota
	// ParseFailure means an attribute value failed to parse as the
	// expected sort (number, base64, JSON, UTF-8).
	ParseFailure
	// RegexError means a configured pattern failed to compile.
	RegexError
	// RegexMiss means a pattern compiled but matched nothing when a
	// match was required.
	RegexMiss
	// TypeMismatch means a JSON-pointer target exists but is not the
	// expected sort.
	TypeMismatch
	// EmptyList means First/Last was applied to an empty StrList.
	EmptyList
	// MalformedHeader means a structured header (user-agent, cookie)
	// could not be parsed or was absent.
	MalformedHeader
)

func (k Kind) String() string {
	switch k {
	case MissingAttribute:
		return "missing_attribute"
	case ParseFailure:
		return "parse_failure"
	case RegexError:
		return "regex_error"
	case RegexMiss:
		return "regex_miss"
	case TypeMismatch:
		return "type_mismatch"
	case EmptyList:
		return "empty_list"
	case MalformedHeader:
		return "malformed_header"
	default:
		return "unknown"
	}
}

// Error is the evaluator's single error type. It never unwinds across
// sibling expressions; targeting absorbs it, combinators propagate it.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func errMissingAttribute(key string) *Error {
	return &Error{Kind: MissingAttribute, Reason: fmt.Sprintf("attribute %q not found", key)}
}

func errParse(sort, value string, cause error) *Error {
	return &Error{Kind: ParseFailure, Reason: fmt.Sprintf("cannot parse %q as %s: %v", value, sort, cause)}
}

func errRegex(pattern string, cause error) *Error {
	return &Error{Kind: RegexError, Reason: fmt.Sprintf("invalid regex %q: %v", pattern, cause)}
}

func errRegexMiss(pattern, value string) *Error {
	return &Error{Kind: RegexMiss, Reason: fmt.Sprintf("regex %q did not match %q", pattern, value)}
}

func errTypeMismatch(pointer, wantSort string) *Error {
	return &Error{Kind: TypeMismatch, Reason: fmt.Sprintf("value at %q is not a %s", pointer, wantSort)}
}

func errEmptyList(op string) *Error {
	return &Error{Kind: EmptyList, Reason: fmt.Sprintf("%s of empty list", op)}
}

func errMalformedHeader(header, reason string) *Error {
	return &Error{Kind: MalformedHeader, Reason: fmt.Sprintf("malformed %s header: %s", header, reason)}
}
