package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/karantnn/GitCode/pkg/record"
)

func TestTruncateExactCap(t *testing.T) {
	long := strings.Repeat("x", 201)
	got := Truncate(long, MaxScalarLen)

	if len([]rune(got)) != MaxScalarLen {
		t.Fatalf("expected exactly %d characters, got %d", MaxScalarLen, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[190:])
	}
	if got[:197] != long[:197] {
		t.Fatal("truncation must keep the first 197 characters")
	}
}

func TestTruncateLeavesShortStrings(t *testing.T) {
	exact := strings.Repeat("y", 200)
	if got := Truncate(exact, MaxScalarLen); got != exact {
		t.Fatal("strings at the cap must pass through unchanged")
	}
	if got := Truncate("short", MaxScalarLen); got != "short" {
		t.Fatalf("unexpected change: %q", got)
	}
}

func TestFormatValueScalars(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"integer", json.Number("42"), "42"},
		{"decimal", json.Number("3.14"), "3.14"},
		{"string", "hello", "hello"},
		{"fallback", 2.5, "2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fv := FormatValue(tc.value, 0)
			if fv.Multiline() {
				t.Fatal("scalar must be inline")
			}
			if fv.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, fv.String())
			}
		})
	}
}

func TestFormatValueEmptyArray(t *testing.T) {
	fv := FormatValue([]any{}, 0)
	if fv.Multiline() || fv.String() != "[]" {
		t.Fatalf("expected inline [], got multiline=%v %q", fv.Multiline(), fv.String())
	}
}

func TestFormatValueArrayBlock(t *testing.T) {
	fv := FormatValue([]any{"alpha", "beta"}, 0)
	if !fv.Multiline() {
		t.Fatal("non-empty array must be a block")
	}
	want := []string{"  - alpha", "  - beta"}
	if diff := cmp.Diff(want, fv.Lines()); diff != "" {
		t.Fatalf("array lines mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValueNestedRecord(t *testing.T) {
	rec, err := record.Parse([]byte(`{"outer":{"x":1,"y":{"z":2}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	outer, _ := rec.Get("outer")

	fv := FormatValue(outer, 1)
	if !fv.Multiline() {
		t.Fatal("nested record must be a block")
	}
	want := []string{
		"   x: 1",
		"   y:",
		"     z: 2",
	}
	if diff := cmp.Diff(want, fv.Lines()); diff != "" {
		t.Fatalf("nested record lines mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValueEmptyNestedRecord(t *testing.T) {
	rec, err := record.Parse([]byte(`{"outer":{}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	outer, _ := rec.Get("outer")

	fv := FormatValue(outer, 0)
	if fv.Multiline() || fv.String() != "{}" {
		t.Fatalf("expected inline {}, got multiline=%v %q", fv.Multiline(), fv.String())
	}
}

func TestFormatValueMultilineString(t *testing.T) {
	fv := FormatValue("## Overview\nGrowth looks stable.", 1)
	if !fv.Multiline() {
		t.Fatal("string with line breaks must be a block")
	}
	want := []string{
		"  ## Overview",
		"  Growth looks stable.",
	}
	if diff := cmp.Diff(want, fv.Lines()); diff != "" {
		t.Fatalf("multiline string mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValueDeterministic(t *testing.T) {
	rec, err := record.Parse([]byte(`{"a":[1,{"b":["c"]}],"d":{"e":null}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	first := FormatValue(mustGet(t, rec, "a"), 0)
	second := FormatValue(mustGet(t, rec, "a"), 0)
	if diff := cmp.Diff(first.Lines(), second.Lines()); diff != "" {
		t.Fatalf("repeated formatting differs:\n%s", diff)
	}
}

func mustGet(t *testing.T, rec *record.Record, name string) any {
	t.Helper()
	v, ok := rec.Get(name)
	if !ok {
		t.Fatalf("field %q missing", name)
	}
	return v
}
