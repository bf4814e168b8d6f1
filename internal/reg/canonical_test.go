package reg

import (
	"encoding/json"
	"testing"
)

func jsonNumber(s string) json.Number { return json.Number(s) }

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": "z",
		"alpha": "a",
		"mango": "m",
	}

	got, err := MarshalCanonical(obj)
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	want := `{"alpha":"a","mango":"m","zebra":"z"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{"expr": "a < b && c > d"})
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	want := `{"expr":"a < b && c > d"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" as precomposed U+00E9 vs decomposed e + U+0301 must serialize
	// identically.
	precomposed := map[string]any{"name": "café"}
	decomposed := map[string]any{"name": "café"}

	a, err := MarshalCanonical(precomposed)
	if err != nil {
		t.Fatalf("MarshalCanonical(precomposed) failed: %v", err)
	}
	b, err := MarshalCanonical(decomposed)
	if err != nil {
		t.Fatalf("MarshalCanonical(decomposed) failed: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("NFC forms differ: %s vs %s", a, b)
	}
}

func TestMarshalCanonical_RejectsFloats(t *testing.T) {
	if _, err := MarshalCanonical(map[string]any{"x": 1.5}); err == nil {
		t.Error("expected error for float64 value")
	}
	if _, err := MarshalCanonical(map[string]any{"x": jsonNumber("1.5")}); err == nil {
		t.Error("expected error for fractional json.Number")
	}
	if _, err := MarshalCanonical(map[string]any{"x": jsonNumber("1e3")}); err == nil {
		t.Error("expected error for exponent json.Number")
	}
}

func TestMarshalCanonical_AcceptsIntegers(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{"n": jsonNumber("42"), "m": int64(7)})
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	want := `{"m":7,"n":42}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	if _, err := MarshalCanonical(map[string]any{"x": nil}); err == nil {
		t.Error("expected error for null value")
	}
}

func TestMarshalCanonical_NestedStructures(t *testing.T) {
	obj := map[string]any{
		"outer": map[string]any{
			"list": []any{"b", "a", jsonNumber("3")},
			"flag": true,
		},
	}
	got, err := MarshalCanonical(obj)
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	// Array order is preserved; only object keys sort.
	want := `{"outer":{"flag":true,"list":["b","a",3]}}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_LineSeparatorsUnescaped(t *testing.T) {
	got, err := MarshalCanonical("a\u2028b\u2029c")
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	want := "\"a\u2028b\u2029c\""
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMarshalCanonical_LiteralBackslashU2028Preserved(t *testing.T) {
	// The six characters backslash-u-2-0-2-8 in the input are data, not an
	// escape; the encoder's doubled backslash must survive unescaping.
	got, err := MarshalCanonical(`\u2028`)
	if err != nil {
		t.Fatalf("MarshalCanonical() failed: %v", err)
	}
	want := `"\\u2028"`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUTF16Less_SurrogateOrdering(t *testing.T) {
	// U+10000 encodes as surrogate pair D800 DC00. In UTF-8 byte order
	// U+FF61 (EF BD A1) sorts before U+10000 (F0 90 80 80); in UTF-16 code
	// unit order D800 sorts before FF61.
	if !utf16Less("\U00010000", "｡") {
		t.Error("expected U+10000 to sort before U+FF61 by UTF-16 code units")
	}
	if utf16Less("｡", "\U00010000") {
		t.Error("expected U+FF61 to sort after U+10000 by UTF-16 code units")
	}
}

func TestMarshalCanonical_KeyOrderInvariance(t *testing.T) {
	// Two maps with identical content produce identical bytes regardless of
	// construction order.
	a := map[string]any{}
	a["first"] = "1"
	a["second"] = "2"
	a["third"] = "3"

	b := map[string]any{}
	b["third"] = "3"
	b["first"] = "1"
	b["second"] = "2"

	ba, err := MarshalCanonical(a)
	if err != nil {
		t.Fatalf("MarshalCanonical(a) failed: %v", err)
	}
	bb, err := MarshalCanonical(b)
	if err != nil {
		t.Fatalf("MarshalCanonical(b) failed: %v", err)
	}
	if string(ba) != string(bb) {
		t.Errorf("canonical output differs: %s vs %s", ba, bb)
	}
}
