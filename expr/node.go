// Package expr implements the recursive, typed expression language
// evaluated against a request attribute map: four result sorts (Bool,
// Str, StrList, Num), each a closed set of variants that evaluate to a
// typed value or a typed *Error. See errors.go for the error taxonomy
// and {bool,str,strlist,num}.go for the variant catalogue.
package expr

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/feature-mesh/targeting/request"
)

// Context is the read-only evaluation environment threaded through a
// single call to Eval on any sort. It is cheap to construct and safe to
// share across concurrent evaluations of the same request: the
// RegexCache it points to compiles patterns lazily on first use and
// guards its map with a mutex (see RegexCache.Compile).
type Context struct {
	Req     request.Request
	Regexes *RegexCache
}

// NewContext builds an evaluation context for a single request. The
// regex cache is optional; passing nil is safe (a new, empty cache is
// made for this context alone, so patterns are compiled once per
// context instead of being shared across contexts).
func NewContext(req request.Request, regexes *RegexCache) *Context {
	if regexes == nil {
		regexes = NewRegexCache()
	}
	return &Context{Req: req, Regexes: regexes}
}

// BoolNode is implemented by every Bool expression variant.
type BoolNode interface {
	evalBool(ctx *Context) (bool, error)
	json.Marshaler
}

// StrNode is implemented by every Str expression variant.
type StrNode interface {
	evalStr(ctx *Context) (string, error)
	json.Marshaler
}

// StrListNode is implemented by every StrList expression variant.
type StrListNode interface {
	evalStrList(ctx *Context) ([]string, error)
	json.Marshaler
}

// NumNode is implemented by every Num expression variant.
type NumNode interface {
	evalNum(ctx *Context) (float64, error)
	json.Marshaler
}

// BoolExpr wraps a BoolNode so expression trees can be stored, copied,
// and (de)serialized by value. The zero value is invalid; Eval on a
// zero BoolExpr returns an error rather than panicking.
type BoolExpr struct{ Node BoolNode }

// StrExpr wraps a StrNode.
type StrExpr struct{ Node StrNode }

// StrListExpr wraps a StrListNode.
type StrListExpr struct{ Node StrListNode }

// NumExpr wraps a NumNode.
type NumExpr struct{ Node NumNode }

// Eval evaluates the wrapped Bool expression against ctx.
func (e BoolExpr) Eval(ctx *Context) (bool, error) {
	if e.Node == nil {
		return false, &Error{Kind: ParseFailure, Reason: "empty bool expression"}
	}
	return e.Node.evalBool(ctx)
}

// Eval evaluates the wrapped Str expression against ctx.
func (e StrExpr) Eval(ctx *Context) (string, error) {
	if e.Node == nil {
		return "", &Error{Kind: ParseFailure, Reason: "empty str expression"}
	}
	return e.Node.evalStr(ctx)
}

// Eval evaluates the wrapped StrList expression against ctx.
func (e StrListExpr) Eval(ctx *Context) ([]string, error) {
	if e.Node == nil {
		return nil, &Error{Kind: ParseFailure, Reason: "empty strlist expression"}
	}
	return e.Node.evalStrList(ctx)
}

// Eval evaluates the wrapped Num expression against ctx.
func (e NumExpr) Eval(ctx *Context) (float64, error) {
	if e.Node == nil {
		return 0, &Error{Kind: ParseFailure, Reason: "empty num expression"}
	}
	return e.Node.evalNum(ctx)
}

func (e BoolExpr) MarshalJSON() ([]byte, error) {
	if e.Node == nil {
		return nil, fmt.Errorf("expr: cannot marshal empty bool expression")
	}
	return e.Node.MarshalJSON()
}

func (e StrExpr) MarshalJSON() ([]byte, error) {
	if e.Node == nil {
		return nil, fmt.Errorf("expr: cannot marshal empty str expression")
	}
	return e.Node.MarshalJSON()
}

func (e StrListExpr) MarshalJSON() ([]byte, error) {
	if e.Node == nil {
		return nil, fmt.Errorf("expr: cannot marshal empty strlist expression")
	}
	return e.Node.MarshalJSON()
}

func (e NumExpr) MarshalJSON() ([]byte, error) {
	if e.Node == nil {
		return nil, fmt.Errorf("expr: cannot marshal empty num expression")
	}
	return e.Node.MarshalJSON()
}

// singleKey splits a tagged-union object {"variant_name": payload} into
// its discriminator and raw payload. Every expression variant is
// encoded this way: a single-key object whose key is the variant's
// snake-case name.
func singleKey(data []byte) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, fmt.Errorf("expr: expression must be a JSON object: %w", err)
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("expr: expression object must have exactly one key, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	panic("unreachable")
}

// marshalVariant encodes a single-key tagged-union object.
func marshalVariant(key string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{key: payload})
}

// RegexCache compiles regex patterns on first use and remembers them by
// pattern string for the lifetime of a Config. It is safe for
// concurrent use: the mutex only ever guards the map, never the
// evaluation itself.
type RegexCache struct {
	mu sync.Mutex
	m  map[string]*regexp.Regexp
}

// NewRegexCache returns an empty, ready-to-use cache.
func NewRegexCache() *RegexCache {
	return &RegexCache{m: make(map[string]*regexp.Regexp)}
}

// Compile returns the compiled form of pattern, compiling and caching
// it on first request.
func (c *RegexCache) Compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.m[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.m[pattern] = re
	return re, nil
}
