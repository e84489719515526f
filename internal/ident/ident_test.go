package ident

import (
	"errors"
	"testing"
)

func TestNewIdent(t *testing.T) {
	valid := []string{"a", "A", "Bool", "U8", "alphaNum", "Alpha_Num_Lodash", "x1234567890123456789012345678901"}
	for _, s := range valid {
		if _, err := NewIdent(s); err != nil {
			t.Errorf("NewIdent(%q) failed: %v", s, err)
		}
	}

	invalid := []string{
		"",
		"1abc",
		"_abc",
		"has space",
		"has-dash",
		"überName",
		"x12345678901234567890123456789012", // 33 chars
	}
	for _, s := range invalid {
		_, err := NewIdent(s)
		if err == nil {
			t.Errorf("NewIdent(%q) should fail", s)
			continue
		}
		var iie *InvalidIdentError
		if !errors.As(err, &iie) {
			t.Errorf("NewIdent(%q) returned %T, want *InvalidIdentError", s, err)
		}
	}
}

func TestMustIdentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustIdent on invalid input should panic")
		}
	}()
	MustIdent("not valid!")
}

func TestNewTypeFqn(t *testing.T) {
	fqn, err := NewTypeFqn("Std.AsciiPrintable")
	if err != nil {
		t.Fatalf("NewTypeFqn failed: %v", err)
	}
	if fqn.Lib != "Std" || fqn.Name != "AsciiPrintable" {
		t.Errorf("unexpected fqn parts: %q / %q", fqn.Lib, fqn.Name)
	}
	if fqn.String() != "Std.AsciiPrintable" {
		t.Errorf("unexpected rendering %q", fqn.String())
	}

	for _, s := range []string{"NoDot", "Too.Many.Dots", ".Name", "Lib.", "1Lib.Name"} {
		if _, err := NewTypeFqn(s); err == nil {
			t.Errorf("NewTypeFqn(%q) should fail", s)
		}
	}
}

func TestSizing(t *testing.T) {
	if SizingU8.Min != 0 || SizingU8.Max != 255 {
		t.Errorf("unexpected SizingU8: %v", SizingU8)
	}
	if SizingU8NonEmpty.Min != 1 {
		t.Errorf("unexpected SizingU8NonEmpty: %v", SizingU8NonEmpty)
	}
	if SizingU16.Max != 65535 {
		t.Errorf("unexpected SizingU16: %v", SizingU16)
	}
}

func TestSizeArithmetic(t *testing.T) {
	a := FixedSize(4)
	b := FixedSize(8)
	sum := a.Add(b)
	if sum.IsVariable() || sum.Fixed() != 12 {
		t.Errorf("FixedSize(4)+FixedSize(8) = %v", sum)
	}
	v := a.Add(VariableSize())
	if !v.IsVariable() {
		t.Error("fixed+variable should be variable")
	}
}
