package expr

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

// resolveJSONPointer parses raw as a JSON document and dereferences ptr
// per RFC 6901, returning the raw Go value found there. Callers cast
// the result to the sort they need.
func resolveJSONPointer(raw, ptr string) (any, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errParse("json", raw, err)
	}
	p, err := jsonpointer.New(ptr)
	if err != nil {
		return nil, &Error{Kind: ParseFailure, Reason: fmt.Sprintf("invalid json pointer %q: %v", ptr, err)}
	}
	val, _, err := p.Get(doc)
	if err != nil {
		return nil, &Error{Kind: TypeMismatch, Reason: fmt.Sprintf("json pointer %q: %v", ptr, err)}
	}
	return val, nil
}

func jsonPointerBool(raw, ptr string) (bool, error) {
	v, err := resolveJSONPointer(raw, ptr)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errTypeMismatch(ptr, "bool")
	}
	return b, nil
}

func jsonPointerString(raw, ptr string) (string, error) {
	v, err := resolveJSONPointer(raw, ptr)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errTypeMismatch(ptr, "string")
	}
	return s, nil
}

func jsonPointerNum(raw, ptr string) (float64, error) {
	v, err := resolveJSONPointer(raw, ptr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(float64)
	if !ok {
		return 0, errTypeMismatch(ptr, "number")
	}
	return n, nil
}
