package expr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/feature-mesh/targeting/uaparse"
)

// UnmarshalJSON decodes a tagged-union Str expression object.
func (e *StrExpr) UnmarshalJSON(data []byte) error {
	key, payload, err := singleKey(data)
	if err != nil {
		return err
	}
	node, err := unmarshalStr(key, payload)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

func unmarshalStr(key string, payload json.RawMessage) (StrNode, error) {
	switch key {
	case "constant":
		var v StrConstant
		if err := json.Unmarshal(payload, (*string)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "attribute":
		var v StrAttribute
		if err := json.Unmarshal(payload, (*string)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "base64":
		var inner StrExpr
		if err := json.Unmarshal(payload, &inner); err != nil {
			return nil, err
		}
		return StrBase64{Inner: inner}, nil
	case "extract":
		var v StrExtract
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "cookie":
		var v StrCookie
		if err := json.Unmarshal(payload, (*string)(&v)); err != nil {
			return nil, err
		}
		return v, nil
	case "browser":
		return StrBrowser{}, nil
	case "browser_version":
		return StrBrowserVersion{}, nil
	case "operating_system":
		return StrOperatingSystem{}, nil
	case "json_pointer":
		var v StrJSONPointer
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "first":
		var list StrListExpr
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, err
		}
		return StrFirst{List: list}, nil
	case "last":
		var list StrListExpr
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, err
		}
		return StrLast{List: list}, nil
	default:
		return nil, fmt.Errorf("expr: unknown str variant %q", key)
	}
}

// StrConstant always evaluates to its literal value.
type StrConstant string

func (v StrConstant) evalStr(*Context) (string, error) { return string(v), nil }
func (v StrConstant) MarshalJSON() ([]byte, error)      { return marshalVariant("constant", string(v)) }

// StrAttribute evaluates to request[key], failing if absent.
type StrAttribute string

func (v StrAttribute) evalStr(ctx *Context) (string, error) {
	val, ok := ctx.Req.Get(string(v))
	if !ok {
		return "", errMissingAttribute(string(v))
	}
	return val, nil
}
func (v StrAttribute) MarshalJSON() ([]byte, error) { return marshalVariant("attribute", string(v)) }

// StrBase64 standard-base64-decodes its inner value and interprets the
// result as UTF-8.
type StrBase64 struct{ Inner StrExpr }

func (v StrBase64) evalStr(ctx *Context) (string, error) {
	inner, err := v.Inner.Eval(ctx)
	if err != nil {
		return "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(inner)
	if err != nil {
		return "", errParse("base64", inner, err)
	}
	if !utf8.Valid(decoded) {
		return "", errParse("utf8", inner, fmt.Errorf("invalid UTF-8"))
	}
	return string(decoded), nil
}
func (v StrBase64) MarshalJSON() ([]byte, error) { return marshalVariant("base64", v.Inner) }

// StrExtract returns the first capture group of regex over value.
type StrExtract struct {
	Regex string  `json:"regex"`
	Value StrExpr `json:"value"`
}

func (v StrExtract) evalStr(ctx *Context) (string, error) {
	value, err := v.Value.Eval(ctx)
	if err != nil {
		return "", err
	}
	re, err := ctx.Regexes.Compile(v.Regex)
	if err != nil {
		return "", errRegex(v.Regex, err)
	}
	m := re.FindStringSubmatch(value)
	if m == nil || len(m) < 2 {
		return "", errRegexMiss(v.Regex, value)
	}
	return m[1], nil
}
func (v StrExtract) MarshalJSON() ([]byte, error) { return marshalVariant("extract", v) }

// StrCookie parses the "cookie" header as "k=v; k=v" pairs (literal
// "; " and "=" separators — quoted values and "=" inside values are
// unsupported, matching the source) and returns the value for name.
type StrCookie string

func (v StrCookie) evalStr(ctx *Context) (string, error) {
	header, ok := ctx.Req.Get("cookie")
	if !ok {
		return "", errMalformedHeader("cookie", "header absent")
	}
	for _, pair := range strings.Split(header, "; ") {
		k, val, found := strings.Cut(pair, "=")
		if found && k == string(v) {
			return val, nil
		}
	}
	return "", errMalformedHeader("cookie", fmt.Sprintf("no cookie named %q", string(v)))
}
func (v StrCookie) MarshalJSON() ([]byte, error) { return marshalVariant("cookie", string(v)) }

// StrBrowser parses the "user-agent" header and returns the browser name.
type StrBrowser struct{}

func (v StrBrowser) evalStr(ctx *Context) (string, error) {
	ua, err := parseUA(ctx)
	if err != nil {
		return "", err
	}
	name, _ := ua.Browser()
	return name, nil
}
func (v StrBrowser) MarshalJSON() ([]byte, error) { return marshalVariant("browser", struct{}{}) }

// StrBrowserVersion parses the "user-agent" header and returns the
// browser version.
type StrBrowserVersion struct{}

func (v StrBrowserVersion) evalStr(ctx *Context) (string, error) {
	ua, err := parseUA(ctx)
	if err != nil {
		return "", err
	}
	_, version := ua.Browser()
	return version, nil
}
func (v StrBrowserVersion) MarshalJSON() ([]byte, error) {
	return marshalVariant("browser_version", struct{}{})
}

// StrOperatingSystem parses the "user-agent" header and returns the OS.
type StrOperatingSystem struct{}

func (v StrOperatingSystem) evalStr(ctx *Context) (string, error) {
	ua, err := parseUA(ctx)
	if err != nil {
		return "", err
	}
	return ua.OS(), nil
}
func (v StrOperatingSystem) MarshalJSON() ([]byte, error) {
	return marshalVariant("operating_system", struct{}{})
}

func parseUA(ctx *Context) (*uaparse.UserAgent, error) {
	header, ok := ctx.Req.Get("user-agent")
	if !ok {
		return nil, errMalformedHeader("user-agent", "header absent")
	}
	ua := uaparse.Parse(header)
	if ua == nil {
		return nil, errMalformedHeader("user-agent", "unparseable")
	}
	return ua, nil
}

// StrJSONPointer parses value as JSON, dereferences pointer per RFC
// 6901, and casts the result to string.
type StrJSONPointer struct {
	Pointer string  `json:"pointer"`
	Value   StrExpr `json:"value"`
}

func (v StrJSONPointer) evalStr(ctx *Context) (string, error) {
	raw, err := v.Value.Eval(ctx)
	if err != nil {
		return "", err
	}
	return jsonPointerString(raw, v.Pointer)
}
func (v StrJSONPointer) MarshalJSON() ([]byte, error) { return marshalVariant("json_pointer", v) }

// StrFirst returns the head of the evaluated StrList.
type StrFirst struct{ List StrListExpr }

func (v StrFirst) evalStr(ctx *Context) (string, error) {
	list, err := v.List.Eval(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errEmptyList("first")
	}
	return list[0], nil
}
func (v StrFirst) MarshalJSON() ([]byte, error) { return marshalVariant("first", v.List) }

// StrLast returns the last element of the evaluated StrList.
type StrLast struct{ List StrListExpr }

func (v StrLast) evalStr(ctx *Context) (string, error) {
	list, err := v.List.Eval(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errEmptyList("last")
	}
	return list[len(list)-1], nil
}
func (v StrLast) MarshalJSON() ([]byte, error) { return marshalVariant("last", v.List) }
