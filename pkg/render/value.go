package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/karantnn/GitCode/pkg/record"
)

// MaxScalarLen caps the display length of scalar strings. Longer strings keep
// the first MaxScalarLen-3 characters followed by "...".
const MaxScalarLen = 200

// FormattedValue is the result of formatting a single value: either one
// inline string or a block of pre-indented lines. The explicit variant lets
// callers decide between "name : value" and "name :" plus an indented block
// without inspecting the value's type.
type FormattedValue struct {
	block bool
	lines []string
}

// Inline wraps a single-line value.
func Inline(s string) FormattedValue {
	return FormattedValue{lines: []string{s}}
}

// Block wraps a multi-line value. The lines carry their own indentation.
func Block(lines []string) FormattedValue {
	return FormattedValue{block: true, lines: lines}
}

// Multiline reports whether the value needs its own block.
func (v FormattedValue) Multiline() bool {
	return v.block
}

// String returns the inline representation. For block values it is the first
// line, which is what collapsing layouts (table cells) display.
func (v FormattedValue) String() string {
	if len(v.lines) == 0 {
		return ""
	}
	return v.lines[0]
}

// Lines returns every line of the value.
func (v FormattedValue) Lines() []string {
	return v.lines
}

// FormatValue converts a decoded JSON value into its display form. Scalars
// come back inline; arrays and nested records come back as blocks indented
// relative to indent. Unknown value shapes degrade to a generic string
// conversion rather than failing.
func FormatValue(v any, indent int) FormattedValue {
	switch t := v.(type) {
	case nil:
		return Inline("null")
	case bool:
		if t {
			return Inline("true")
		}
		return Inline("false")
	case json.Number:
		return Inline(t.String())
	case string:
		if strings.Contains(t, "\n") {
			return formatMultilineString(t, indent)
		}
		return Inline(Truncate(t, MaxScalarLen))
	case []any:
		return formatArray(t, indent)
	case *record.Record:
		return formatRecord(t, indent)
	default:
		return Inline(Truncate(fmt.Sprintf("%v", t), MaxScalarLen))
	}
}

// FormatScalar is the inline-only variant used by layouts that collapse
// composites to a single line.
func FormatScalar(v any) string {
	return FormatValue(v, 0).String()
}

// Truncate enforces a hard character cap: strings longer than max keep the
// first max-3 characters and gain a "..." marker, so the result is exactly
// max characters long.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// formatMultilineString turns a string with embedded line breaks into a
// block so list-style callers put the field name on its own line. Each line
// is truncated independently.
func formatMultilineString(s string, indent int) FormattedValue {
	pad := strings.Repeat("  ", indent)
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = pad + Truncate(line, MaxScalarLen)
	}
	return Block(lines)
}

func formatArray(items []any, indent int) FormattedValue {
	if len(items) == 0 {
		return Inline("[]")
	}

	pad := strings.Repeat("  ", indent+1)
	var lines []string
	for _, item := range items {
		fv := FormatValue(item, indent+1)
		if !fv.Multiline() {
			lines = append(lines, pad+"- "+fv.String())
			continue
		}
		lines = append(lines, pad+"-")
		lines = append(lines, fv.Lines()...)
	}
	return Block(lines)
}

func formatRecord(rec *record.Record, indent int) FormattedValue {
	if rec.Len() == 0 {
		return Inline("{}")
	}

	pad := strings.Repeat("  ", indent)
	var lines []string
	for _, field := range rec.Fields() {
		fv := FormatValue(field.Value, indent+1)
		if !fv.Multiline() {
			lines = append(lines, pad+" "+field.Name+": "+fv.String())
			continue
		}
		lines = append(lines, pad+" "+field.Name+":")
		lines = append(lines, fv.Lines()...)
	}
	return Block(lines)
}
