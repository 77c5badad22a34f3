package types_test

import (
	"testing"

	"github.com/miniql/miniql/types"
)

func TestParseDataTypeAliases(t *testing.T) {
	cases := map[string]types.DataType{
		"INTEGER": types.Integer,
		"int":     types.Integer,
		"TEXT":    types.Text,
		"varchar": types.Text,
		"string":  types.Text,
		"REAL":    types.Real,
		"float":   types.Real,
		"double":  types.Real,
		"BOOLEAN": types.Boolean,
		"bool":    types.Boolean,
	}
	for raw, want := range cases {
		got, ok := types.ParseDataType(raw)
		if !ok || got != want {
			t.Fatalf("ParseDataType(%q) = %v, %v; want %v, true", raw, got, ok, want)
		}
	}
	if _, ok := types.ParseDataType("BLOB"); ok {
		t.Fatalf("expected BLOB to be unrecognized")
	}
}

func TestValidateAndCoerceNullPassesThrough(t *testing.T) {
	v, err := types.ValidateAndCoerce(types.Null, types.Integer, "id")
	if err != nil || !v.IsNull() {
		t.Fatalf("expected NULL to pass through unchanged, got %v, %v", v, err)
	}
}

func TestValidateAndCoerceIntegerFromText(t *testing.T) {
	v, err := types.ValidateAndCoerce(types.NewText("42"), types.Integer, "age")
	if err != nil || v.Int() != 42 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestValidateAndCoerceIntegerFromNonIntegralRealFails(t *testing.T) {
	_, err := types.ValidateAndCoerce(types.NewReal(1.5), types.Integer, "age")
	if err == nil {
		t.Fatalf("expected error coercing 1.5 to INTEGER")
	}
}

func TestValidateAndCoerceRealFromInt(t *testing.T) {
	v, err := types.ValidateAndCoerce(types.NewInt(3), types.Real, "price")
	if err != nil || v.Real() != 3.0 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestValidateAndCoerceTextFromInt(t *testing.T) {
	v, err := types.ValidateAndCoerce(types.NewInt(7), types.Text, "label")
	if err != nil || v.Text() != "7" {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestValidateAndCoerceBooleanFromText(t *testing.T) {
	v, err := types.ValidateAndCoerce(types.NewText("yes"), types.Boolean, "active")
	if err != nil || v.Bool() != true {
		t.Fatalf("got %v, %v", v, err)
	}
	v, err = types.ValidateAndCoerce(types.NewText("off"), types.Boolean, "active")
	if err != nil || v.Bool() != false {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestValidateAndCoerceInvalidBooleanFails(t *testing.T) {
	_, err := types.ValidateAndCoerce(types.NewText("maybe"), types.Boolean, "active")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestCompareValuesNullOrdering(t *testing.T) {
	if types.CompareValues(types.Null, types.NewInt(1)) != -1 {
		t.Fatalf("expected NULL < 1")
	}
	if types.CompareValues(types.NewInt(1), types.Null) != 1 {
		t.Fatalf("expected 1 > NULL")
	}
	if types.CompareValues(types.Null, types.Null) != 0 {
		t.Fatalf("expected NULL == NULL")
	}
}

func TestCompareValuesNumericCrossKind(t *testing.T) {
	if types.CompareValues(types.NewInt(2), types.NewReal(2.5)) != -1 {
		t.Fatalf("expected 2 < 2.5")
	}
}

func TestCompareValuesText(t *testing.T) {
	if types.CompareValues(types.NewText("a"), types.NewText("b")) != -1 {
		t.Fatalf("expected 'a' < 'b'")
	}
}
