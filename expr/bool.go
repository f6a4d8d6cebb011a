package expr

import (
	"encoding/json"
	"fmt"
	"math"
)

// UnmarshalJSON decodes a tagged-union Bool expression object.
func (e *BoolExpr) UnmarshalJSON(data []byte) error {
	key, payload, err := singleKey(data)
	if err != nil {
		return err
	}
	node, err := unmarshalBool(key, payload)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

func unmarshalBool(key string, payload json.RawMessage) (BoolNode, error) {
	switch key {
	case "constant":
		var v BoolConstant
		if err := json.Unmarshal(payload, (*bool)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "attribute":
		var v BoolAttribute
		if err := json.Unmarshal(payload, (*string)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "in":
		var v BoolIn
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "any_in":
		var v BoolAnyIn
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "all_in":
		var v BoolAllIn
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "json_pointer":
		var v BoolJSONPointer
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "matches":
		var tuple []json.RawMessage
		if err := json.Unmarshal(payload, &tuple); err != nil || len(tuple) != 2 {
			return nil, fmt.Errorf("expr: matches expects a 2-element array")
		}
		var v BoolMatches
		if err := json.Unmarshal(tuple[0], &v.Regex); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tuple[1], &v.Value); err != nil {
			return nil, err
		}
		return v, nil
	case "str_eq":
		a, b, err := unmarshalPair[StrExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolStrEq{A: a, B: b}, nil
	case "num_eq":
		a, b, err := unmarshalPair[NumExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolNumEq{A: a, B: b}, nil
	case "gt":
		a, b, err := unmarshalPair[NumExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolGt{A: a, B: b}, nil
	case "lt":
		a, b, err := unmarshalPair[NumExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolLt{A: a, B: b}, nil
	case "gte":
		a, b, err := unmarshalPair[NumExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolGte{A: a, B: b}, nil
	case "lte":
		a, b, err := unmarshalPair[NumExpr](payload)
		if err != nil {
			return nil, err
		}
		return BoolLte{A: a, B: b}, nil
	case "not":
		var x BoolExpr
		if err := json.Unmarshal(payload, &x); err != nil {
			return nil, err
		}
		return BoolNot{X: x}, nil
	case "and":
		var xs []BoolExpr
		if err := json.Unmarshal(payload, &xs); err != nil {
			return nil, err
		}
		return BoolAnd{Xs: xs}, nil
	case "or":
		var xs []BoolExpr
		if err := json.Unmarshal(payload, &xs); err != nil {
			return nil, err
		}
		return BoolOr{Xs: xs}, nil
	default:
		return nil, fmt.Errorf("expr: unknown bool variant %q", key)
	}
}

// unmarshalPair decodes a 2-element positional-tuple payload into two
// values of type T (itself usually an Expr wrapper with its own
// UnmarshalJSON), preserving order.
func unmarshalPair[T any](payload json.RawMessage) (a, b T, err error) {
	var tuple []json.RawMessage
	if err = json.Unmarshal(payload, &tuple); err != nil {
		return a, b, err
	}
	if len(tuple) != 2 {
		return a, b, fmt.Errorf("expr: expected a 2-element array, got %d", len(tuple))
	}
	if err = json.Unmarshal(tuple[0], &a); err != nil {
		return a, b, err
	}
	if err = json.Unmarshal(tuple[1], &b); err != nil {
		return a, b, err
	}
	return a, b, nil
}

// --- variants ---

// BoolConstant always evaluates to its literal value.
type BoolConstant bool

func (v BoolConstant) evalBool(*Context) (bool, error) { return bool(v), nil }
func (v BoolConstant) MarshalJSON() ([]byte, error)    { return marshalVariant("constant", bool(v)) }

// BoolAttribute evaluates true iff the named attribute is present.
type BoolAttribute string

func (v BoolAttribute) evalBool(ctx *Context) (bool, error) {
	_, ok := ctx.Req.Get(string(v))
	if !ok {
		return false, errMissingAttribute(string(v))
	}
	return true, nil
}
func (v BoolAttribute) MarshalJSON() ([]byte, error) { return marshalVariant("attribute", string(v)) }

// BoolIn evaluates value ∈ list.
type BoolIn struct {
	List  StrListExpr `json:"list"`
	Value StrExpr     `json:"value"`
}

func (v BoolIn) evalBool(ctx *Context) (bool, error) {
	list, err := v.List.Eval(ctx)
	if err != nil {
		return false, err
	}
	value, err := v.Value.Eval(ctx)
	if err != nil {
		return false, err
	}
	return contains(list, value), nil
}
func (v BoolIn) MarshalJSON() ([]byte, error) { return marshalVariant("in", v) }

// BoolAnyIn evaluates ∃ x ∈ values: x ∈ list.
type BoolAnyIn struct {
	List   StrListExpr `json:"list"`
	Values StrListExpr `json:"values"`
}

func (v BoolAnyIn) evalBool(ctx *Context) (bool, error) {
	list, err := v.List.Eval(ctx)
	if err != nil {
		return false, err
	}
	values, err := v.Values.Eval(ctx)
	if err != nil {
		return false, err
	}
	for _, x := range values {
		if contains(list, x) {
			return true, nil
		}
	}
	return false, nil
}
func (v BoolAnyIn) MarshalJSON() ([]byte, error) { return marshalVariant("any_in", v) }

// BoolAllIn evaluates true iff every element of values appears in list
// (values ⊆ list). An empty values list vacuously satisfies this.
type BoolAllIn struct {
	List   StrListExpr `json:"list"`
	Values StrListExpr `json:"values"`
}

func (v BoolAllIn) evalBool(ctx *Context) (bool, error) {
	list, err := v.List.Eval(ctx)
	if err != nil {
		return false, err
	}
	values, err := v.Values.Eval(ctx)
	if err != nil {
		return false, err
	}
	for _, x := range values {
		if !contains(list, x) {
			return false, nil
		}
	}
	return true, nil
}
func (v BoolAllIn) MarshalJSON() ([]byte, error) { return marshalVariant("all_in", v) }

// BoolJSONPointer parses value as JSON, dereferences pointer per RFC
// 6901, and casts the result to bool.
type BoolJSONPointer struct {
	Pointer string  `json:"pointer"`
	Value   StrExpr `json:"value"`
}

func (v BoolJSONPointer) evalBool(ctx *Context) (bool, error) {
	raw, err := v.Value.Eval(ctx)
	if err != nil {
		return false, err
	}
	return jsonPointerBool(raw, v.Pointer)
}
func (v BoolJSONPointer) MarshalJSON() ([]byte, error) { return marshalVariant("json_pointer", v) }

// BoolMatches performs a regex search (not full-match) over value.
type BoolMatches struct {
	Regex string
	Value StrExpr
}

func (v BoolMatches) evalBool(ctx *Context) (bool, error) {
	value, err := v.Value.Eval(ctx)
	if err != nil {
		return false, err
	}
	re, err := ctx.Regexes.Compile(v.Regex)
	if err != nil {
		return false, errRegex(v.Regex, err)
	}
	return re.MatchString(value), nil
}
func (v BoolMatches) MarshalJSON() ([]byte, error) {
	return marshalVariant("matches", []any{v.Regex, v.Value})
}

// BoolStrEq is string equality.
type BoolStrEq struct{ A, B StrExpr }

func (v BoolStrEq) evalBool(ctx *Context) (bool, error) {
	a, err := v.A.Eval(ctx)
	if err != nil {
		return false, err
	}
	b, err := v.B.Eval(ctx)
	if err != nil {
		return false, err
	}
	return a == b, nil
}
func (v BoolStrEq) MarshalJSON() ([]byte, error) { return marshalVariant("str_eq", []any{v.A, v.B}) }

// numEqEpsilon is the IEEE 754 binary64 machine epsilon.
const numEqEpsilon = 2.220446049250313e-16

// BoolNumEq is numeric equality within machine epsilon.
type BoolNumEq struct{ A, B NumExpr }

func (v BoolNumEq) evalBool(ctx *Context) (bool, error) {
	a, b, err := evalNumPair(ctx, v.A, v.B)
	if err != nil {
		return false, err
	}
	return math.Abs(a-b) < numEqEpsilon, nil
}
func (v BoolNumEq) MarshalJSON() ([]byte, error) { return marshalVariant("num_eq", []any{v.A, v.B}) }

// BoolGt, BoolLt, BoolGte, BoolLte are numeric ordering comparisons.
type BoolGt struct{ A, B NumExpr }
type BoolLt struct{ A, B NumExpr }
type BoolGte struct{ A, B NumExpr }
type BoolLte struct{ A, B NumExpr }

func (v BoolGt) evalBool(ctx *Context) (bool, error) {
	a, b, err := evalNumPair(ctx, v.A, v.B)
	if err != nil {
		return false, err
	}
	return a > b, nil
}
func (v BoolGt) MarshalJSON() ([]byte, error) { return marshalVariant("gt", []any{v.A, v.B}) }

func (v BoolLt) evalBool(ctx *Context) (bool, error) {
	a, b, err := evalNumPair(ctx, v.A, v.B)
	if err != nil {
		return false, err
	}
	return a < b, nil
}
func (v BoolLt) MarshalJSON() ([]byte, error) { return marshalVariant("lt", []any{v.A, v.B}) }

func (v BoolGte) evalBool(ctx *Context) (bool, error) {
	a, b, err := evalNumPair(ctx, v.A, v.B)
	if err != nil {
		return false, err
	}
	return a >= b, nil
}
func (v BoolGte) MarshalJSON() ([]byte, error) { return marshalVariant("gte", []any{v.A, v.B}) }

func (v BoolLte) evalBool(ctx *Context) (bool, error) {
	a, b, err := evalNumPair(ctx, v.A, v.B)
	if err != nil {
		return false, err
	}
	return a <= b, nil
}
func (v BoolLte) MarshalJSON() ([]byte, error) { return marshalVariant("lte", []any{v.A, v.B}) }

func evalNumPair(ctx *Context, a, b NumExpr) (float64, float64, error) {
	av, err := a.Eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	bv, err := b.Eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	return av, bv, nil
}

// BoolNot is logical negation.
type BoolNot struct{ X BoolExpr }

func (v BoolNot) evalBool(ctx *Context) (bool, error) {
	x, err := v.X.Eval(ctx)
	if err != nil {
		return false, err
	}
	return !x, nil
}
func (v BoolNot) MarshalJSON() ([]byte, error) { return marshalVariant("not", v.X) }

// BoolAnd evaluates its children in order, failing the whole node if
// any child fails; otherwise returns the conjunction. A false child
// does not stop evaluation, so a later child's error still fails the
// node; evaluation stops at the first child error, which is returned.
type BoolAnd struct{ Xs []BoolExpr }

func (v BoolAnd) evalBool(ctx *Context) (bool, error) {
	result := true
	for _, x := range v.Xs {
		ok, err := x.Eval(ctx)
		if err != nil {
			return false, err
		}
		result = result && ok
	}
	return result, nil
}
func (v BoolAnd) MarshalJSON() ([]byte, error) { return marshalVariant("and", v.Xs) }

// BoolOr evaluates its children in order, failing the whole node if
// any child fails; otherwise returns the disjunction. A true child does
// not stop evaluation; evaluation stops at the first child error, which
// is returned.
type BoolOr struct{ Xs []BoolExpr }

func (v BoolOr) evalBool(ctx *Context) (bool, error) {
	result := false
	for _, x := range v.Xs {
		ok, err := x.Eval(ctx)
		if err != nil {
			return false, err
		}
		result = result || ok
	}
	return result, nil
}
func (v BoolOr) MarshalJSON() ([]byte, error) { return marshalVariant("or", v.Xs) }

func contains(list []string, value string) bool {
	for _, x := range list {
		if x == value {
			return true
		}
	}
	return false
}
