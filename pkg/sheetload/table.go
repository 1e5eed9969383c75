package sheetload

import (
	"math"
	"strconv"
	"time"
)

// Kind is the variant tag of a cell Value.
type Kind int

// Cell kinds.
const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is one worksheet cell.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// Null returns an empty cell.
func Null() Value { return Value{Kind: KindNull} }

// Text returns a text cell holding s.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number returns a numeric cell holding f.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Bool returns a boolean cell holding b.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date returns a date cell holding t.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsNull reports whether v is an empty cell.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsIntegral reports whether v is a number that fits an int64 without loss.
func (v Value) IsIntegral() bool {
	return v.Kind == KindNumber && v.Number == math.Trunc(v.Number) && math.Abs(v.Number) < 1<<63
}

// String renders the value the way it is stored in a text column.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		if v.IsIntegral() {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// ColumnType is the Postgres type a column is created with.
type ColumnType string

const (
	ColumnBigint    ColumnType = "BIGINT"
	ColumnDouble    ColumnType = "DOUBLE PRECISION"
	ColumnBoolean   ColumnType = "BOOLEAN"
	ColumnTimestamp ColumnType = "TIMESTAMP"
	ColumnText      ColumnType = "TEXT"
)

// Column is a named, typed column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a worksheet materialized in memory.
// Every row has exactly len(Columns) values.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]Value
}

// InferColumnType picks the column type for a set of cell values.
// Nulls are ignored; an all-null column becomes DOUBLE PRECISION and any
// mix of kinds becomes TEXT.
func InferColumnType(values []Value) ColumnType {
	var seen Kind = KindNull
	integral := true
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		if seen == KindNull {
			seen = v.Kind
		} else if seen != v.Kind {
			return ColumnText
		}
		if v.Kind == KindNumber && !v.IsIntegral() {
			integral = false
		}
	}

	switch seen {
	case KindNull:
		return ColumnDouble
	case KindNumber:
		if integral {
			return ColumnBigint
		}
		return ColumnDouble
	case KindBool:
		return ColumnBoolean
	case KindDate:
		return ColumnTimestamp
	default:
		return ColumnText
	}
}

// Arg converts a value to the database argument for a column of type t.
func (v Value) Arg(t ColumnType) any {
	if v.IsNull() {
		return nil
	}
	switch t {
	case ColumnBigint:
		return int64(v.Number)
	case ColumnDouble:
		return v.Number
	case ColumnBoolean:
		return v.Bool
	case ColumnTimestamp:
		return v.Time
	default:
		return v.String()
	}
}
