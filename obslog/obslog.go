// Package obslog provides the structured logging the host shells use
// (cmd/, grpcadapter). The core packages (expr, targeting,
// request) never log. Built on zap for structured logging, plus a
// dot-notation flattener for summarizing nested request/config values
// in a single logfmt-friendly field.
package obslog

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. verbose selects development-style,
// human-readable output (local CLI use); otherwise production JSON
// output is used (gRPC daemon and serve command by default).
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

// Flatten converts val into dot-notation "key=value" pairs joined by
// spaces, flattening nested structs into a single logfmt field. Used
// to summarize a Request or a Config's shape without hand-writing a
// field list per call site.
func Flatten(val any) string {
	var pairs []string
	flatten("", reflect.ValueOf(val), &pairs)
	return strings.Join(pairs, " ")
}

func flatten(prefix string, v reflect.Value, pairs *[]string) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			t := v.Interface().(time.Time)
			if !t.IsZero() {
				*pairs = append(*pairs, formatPair(prefix, t.Format(time.RFC3339)))
			}
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			key := field.Name
			if prefix != "" {
				key = prefix + "." + key
			}
			flatten(key, v.Field(i), pairs)
		}

	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			if prefix != "" {
				key = prefix + "." + key
			}
			flatten(key, iter.Value(), pairs)
		}

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = fmt.Sprintf("%v", v.Index(i).Interface())
		}
		*pairs = append(*pairs, formatPair(prefix, "["+strings.Join(items, ",")+"]"))

	case reflect.String:
		if s := v.String(); s != "" {
			*pairs = append(*pairs, formatPair(prefix, s))
		}

	case reflect.Bool:
		*pairs = append(*pairs, formatPair(prefix, fmt.Sprintf("%t", v.Bool())))

	case reflect.Invalid:
		return

	default:
		*pairs = append(*pairs, formatPair(prefix, fmt.Sprintf("%v", v.Interface())))
	}
}

func formatPair(key, value string) string {
	if strings.ContainsAny(value, " \t\"") {
		return fmt.Sprintf("%s=%q", key, value)
	}
	return fmt.Sprintf("%s=%s", key, value)
}
