package importfilter

import (
	"strconv"
	"time"
)

// ValueKind identifies the type stored in a Value.
type ValueKind int

const (
	// KindNull represents an absent value.
	KindNull ValueKind = iota
	// KindString represents a text value.
	KindString
	// KindNumber represents a numeric value stored as float64.
	KindNumber
	// KindDate represents a calendar date.
	KindDate
)

// exportDateLayout is the date format used for CSV export and string coercion.
const exportDateLayout = "2006-01-02"

// Value is a single typed cell. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	date time.Time
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewNumber returns a numeric value.
func NewNumber(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// NewDate returns a date value.
func NewDate(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the string payload. It is empty for non-string values.
func (v Value) Text() string {
	return v.str
}

// Number returns the numeric payload. It is zero for non-number values.
func (v Value) Number() float64 {
	return v.num
}

// Date returns the date payload. It is the zero time for non-date values.
func (v Value) Date() time.Time {
	return v.date
}

// String returns the value coerced to its string form. Null values
// coerce to the empty string so that text filters and export treat
// missing cells uniformly.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(exportDateLayout)
	default:
		return ""
	}
}

// Equal compares two values by kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindDate:
		return v.date.Equal(other.date)
	default:
		return true
	}
}
