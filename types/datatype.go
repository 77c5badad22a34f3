package types

import (
	"strconv"
	"strings"

	"github.com/miniql/miniql/errs"
)

// DataType is a column's declared storage type.
type DataType int

const (
	Integer DataType = iota
	Text
	Real
	Boolean
)

func (d DataType) String() string {
	switch d {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Real:
		return "REAL"
	case Boolean:
		return "BOOLEAN"
	default:
		return "?"
	}
}

var typeAliases = map[string]DataType{
	"INTEGER": Integer,
	"INT":     Integer,
	"TEXT":    Text,
	"VARCHAR": Text,
	"STRING":  Text,
	"REAL":    Real,
	"FLOAT":   Real,
	"DOUBLE":  Real,
	"BOOLEAN": Boolean,
	"BOOL":    Boolean,
}

// ParseDataType resolves a column type spelling (as written in a CREATE
// TABLE statement) to a DataType, accepting the same aliases as the
// column-type keyword set.
func ParseDataType(raw string) (DataType, bool) {
	dt, ok := typeAliases[strings.ToUpper(raw)]
	return dt, ok
}

// ValidateAndCoerce checks that value is compatible with target and
// returns the coerced Value. NULL is always accepted regardless of
// target. column is used only to annotate error messages; pass "" when
// no column context is available (e.g. coercing a bare literal).
func ValidateAndCoerce(value Value, target DataType, column string) (Value, error) {
	if value.IsNull() {
		return Null, nil
	}

	switch target {
	case Integer:
		switch value.Kind() {
		case KindInt:
			return value, nil
		case KindReal:
			if value.Real() == float64(int64(value.Real())) {
				return NewInt(int64(value.Real())), nil
			}
			return Value{}, typeErr(target, value, column)
		case KindText:
			n, err := strconv.ParseInt(strings.TrimSpace(value.Text()), 10, 64)
			if err != nil {
				return Value{}, typeErr(target, value, column)
			}
			return NewInt(n), nil
		default:
			return Value{}, typeErr(target, value, column)
		}

	case Text:
		if value.Kind() == KindText {
			return value, nil
		}
		return NewText(value.String()), nil

	case Real:
		switch value.Kind() {
		case KindInt:
			return NewReal(float64(value.Int())), nil
		case KindReal:
			return value, nil
		case KindText:
			f, err := strconv.ParseFloat(strings.TrimSpace(value.Text()), 64)
			if err != nil {
				return Value{}, typeErr(target, value, column)
			}
			return NewReal(f), nil
		default:
			return Value{}, typeErr(target, value, column)
		}

	case Boolean:
		switch value.Kind() {
		case KindBool:
			return value, nil
		case KindInt:
			return NewBool(value.Int() != 0), nil
		case KindText:
			switch strings.ToLower(value.Text()) {
			case "true", "1", "yes", "on":
				return NewBool(true), nil
			case "false", "0", "no", "off":
				return NewBool(false), nil
			}
			return Value{}, typeErr(target, value, column)
		default:
			return Value{}, typeErr(target, value, column)
		}
	}

	return Value{}, typeErr(target, value, column)
}

func typeErr(target DataType, actual Value, column string) error {
	return &errs.DataTypeError{Expected: target.String(), Actual: actual.String(), Column: column}
}

// CompareValues orders two values, treating NULL as less than any
// non-NULL value and equal to another NULL. Numeric kinds compare by
// widened float64; TEXT compares as strings and BOOLEAN orders false
// before true. Values of two different non-numeric kinds have no defined
// order: the result depends on the left operand's kind and carries no
// meaning.
func CompareValues(left, right Value) int {
	if left.IsNull() && right.IsNull() {
		return 0
	}
	if left.IsNull() {
		return -1
	}
	if right.IsNull() {
		return 1
	}

	if isNumeric(left.Kind()) && isNumeric(right.Kind()) {
		lf, rf := left.AsFloat64(), right.AsFloat64()
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	}

	switch left.Kind() {
	case KindText:
		return strings.Compare(left.Text(), right.Text())
	case KindBool:
		if left.Bool() == right.Bool() {
			return 0
		}
		if !left.Bool() {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindReal }
