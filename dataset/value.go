package dataset

import (
	"encoding/json"
	"strconv"
	"time"
)

// ============================================================================
// VALUE — Nullable typed cell
// ============================================================================
// Every cell in a Table is a Value: string, number, bool, timestamp, or null.
// Null is the representation for missing and malformed input — the engine
// never errors on a bad cell, it stores a null and moves on.
// ============================================================================

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

// Value is a single nullable cell.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// NullValue returns the null cell.
func NullValue() Value { return Value{kind: KindNull} }

// StringValue wraps a string cell.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a numeric cell.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps a boolean cell.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// TimeValue wraps a timestamp cell.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the type of the cell.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string content, ok=false for any other kind.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric content, ok=false for any other kind.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean content, ok=false for any other kind.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsTime returns the timestamp content, ok=false for any other kind.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Text renders the cell as a plain string: group keys, filter membership
// checks, and labels all go through here. Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// MarshalJSON renders null cells as JSON null and typed cells as their
// natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}
