package repl

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Value is one bound argument: the raw token a user typed, or a parameter
// default. Conversion happens lazily, when a handler asks for a type.
type Value struct {
	raw string
}

// NewValue wraps a raw token.
func NewValue(raw string) Value { return Value{raw: raw} }

// String returns the raw token.
func (v Value) String() string { return v.raw }

// Compare orders values by their raw strings.
func (v Value) Compare(other Value) int { return strings.Compare(v.raw, other.raw) }

// Int converts the value to an int.
func (v Value) Int() (int, error) { return Convert[int](v) }

// Int64 converts the value to an int64.
func (v Value) Int64() (int64, error) { return Convert[int64](v) }

// Float64 converts the value to a float64.
func (v Value) Float64() (float64, error) { return Convert[float64](v) }

// Bool converts the value to a bool (1, t, true, 0, f, false, ...).
func (v Value) Bool() (bool, error) { return Convert[bool](v) }

// Duration converts the value with time.ParseDuration.
func (v Value) Duration() (time.Duration, error) { return Convert[time.Duration](v) }

// Convert parses v into T. Strings, booleans, every integer and float width,
// time.Duration and any type whose pointer implements
// encoding.TextUnmarshaler are supported.
func Convert[T any](v Value) (T, error) {
	var out T
	var err error

	switch p := any(&out).(type) {
	case *string:
		*p = v.raw
	case *bool:
		*p, err = strconv.ParseBool(v.raw)
	case *time.Duration:
		*p, err = time.ParseDuration(v.raw)
	case encoding.TextUnmarshaler:
		err = p.UnmarshalText([]byte(v.raw))
	default:
		err = convertReflect(reflect.ValueOf(&out).Elem(), v.raw)
	}

	if err != nil {
		var zero T
		return zero, &ConversionError{Value: v.raw, Type: fmt.Sprintf("%T", out), Err: unwrapNumError(err)}
	}
	return out, nil
}

// convertReflect handles the numeric kinds, including named numeric types.
func convertReflect(dst reflect.Value, raw string) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	case reflect.String:
		dst.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	default:
		return ErrUnsupportedType
	}
	return nil
}

// unwrapNumError drops strconv's own "parsing X:" prefix, which would repeat
// what ConversionError already says.
func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// Args is the per-dispatch mapping from parameter name to bound value.
// Optional parameters without a default are absent when omitted.
type Args map[string]Value

// Get returns the value bound to name.
func (a Args) Get(name string) (Value, bool) {
	v, ok := a[name]
	return v, ok
}

// Has reports whether name was bound.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Arg fetches and converts the argument bound to name.
func Arg[T any](args Args, name string) (T, error) {
	v, ok := args[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%q: %w", name, ErrArgumentNotBound)
	}
	return Convert[T](v)
}
