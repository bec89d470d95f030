// Package models defines data structures for worksheet conversion.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrUnrepresentable indicates a value that has no JSON encoding.
var ErrUnrepresentable = errors.New("value not representable in JSON")

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell value. The zero Value is null.
type Value struct {
	kind    Kind
	str     string
	integer bool
	i       int64
	f       float64
	b       bool
	t       time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integral number value.
func Int(i int64) Value { return Value{kind: KindNumber, integer: true, i: i} }

// Float returns a fractional number value.
func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsInt reports whether v is an integral number.
func (v Value) IsInt() bool { return v.kind == KindNumber && v.integer }

// Str returns the string held by v, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Time returns the date held by v, or the zero time for other kinds.
func (v Value) Time() time.Time { return v.t }

// Interface returns v as a plain Go value: nil, string, int64, float64,
// bool or time.Time.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integer {
			return v.i
		}
		return v.f
	case KindBool:
		return v.b
	case KindDate:
		return v.t
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Dates encode as epoch milliseconds;
// callers wanting another encoding convert them before marshaling.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindDate:
		return strconv.AppendInt(nil, v.t.UnixMilli(), 10), nil
	case KindNumber:
		if v.integer {
			return strconv.AppendInt(nil, v.i, 10), nil
		}
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, v.f)
		}
		return json.Marshal(v.f)
	}
	return nil, fmt.Errorf("%w: unknown kind %s", ErrUnrepresentable, v.kind)
}
