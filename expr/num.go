package expr

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// UnmarshalJSON decodes a tagged-union Num expression object.
func (e *NumExpr) UnmarshalJSON(data []byte) error {
	key, payload, err := singleKey(data)
	if err != nil {
		return err
	}
	node, err := unmarshalNum(key, payload)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

func unmarshalNum(key string, payload json.RawMessage) (NumNode, error) {
	switch key {
	case "constant":
		var v NumConstant
		if err := json.Unmarshal(payload, (*float64)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "attribute":
		var v NumAttribute
		if err := json.Unmarshal(payload, (*string)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "rank":
		var str StrExpr
		if err := json.Unmarshal(payload, &str); err != nil {
			return nil, err
		}
		return NumRank{Str: str}, nil
	case "json_pointer":
		var v NumJSONPointer
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("expr: unknown num variant %q", key)
	}
}

// NumConstant always evaluates to its literal value.
type NumConstant float64

func (v NumConstant) evalNum(*Context) (float64, error) { return float64(v), nil }
func (v NumConstant) MarshalJSON() ([]byte, error)      { return marshalVariant("constant", float64(v)) }

// NumAttribute parses request[key] as a float64.
type NumAttribute string

func (v NumAttribute) evalNum(ctx *Context) (float64, error) {
	val, ok := ctx.Req.Get(string(v))
	if !ok {
		return 0, errMissingAttribute(string(v))
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, errParse("number", val, err)
	}
	return n, nil
}
func (v NumAttribute) MarshalJSON() ([]byte, error) { return marshalVariant("attribute", string(v)) }

// rankModulus and rankDivisor implement the [0.0, 100.0) projection:
// (hash mod 1000) / 10.0, one decimal place of resolution.
const (
	rankModulus = 1000
	rankDivisor = 10.0
)

// NumRank hashes the evaluated string with a deterministic 64-bit hash
// (xxhash, chosen for process-stable, cross-run-stable output) and
// projects it into [0.0, 100.0).
type NumRank struct{ Str StrExpr }

func (v NumRank) evalNum(ctx *Context) (float64, error) {
	s, err := v.Str.Eval(ctx)
	if err != nil {
		return 0, err
	}
	h := xxhash.Sum64String(s)
	return float64(h%rankModulus) / rankDivisor, nil
}
func (v NumRank) MarshalJSON() ([]byte, error) { return marshalVariant("rank", v.Str) }

// NumJSONPointer parses value as JSON, dereferences pointer per RFC
// 6901, and casts the result to a number.
type NumJSONPointer struct {
	Pointer string  `json:"pointer"`
	Value   StrExpr `json:"value"`
}

func (v NumJSONPointer) evalNum(ctx *Context) (float64, error) {
	raw, err := v.Value.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return jsonPointerNum(raw, v.Pointer)
}
func (v NumJSONPointer) MarshalJSON() ([]byte, error) { return marshalVariant("json_pointer", v) }
