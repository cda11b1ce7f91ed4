// Package table renders an analysis record as a two-column property table.
package table

import (
	"context"
	"strings"

	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
)

// The value column has a fixed content width; longer values collapse to
// valueWidth-3 characters plus "...". Nested structures collapse to their
// first line, the table layout never renders multi-line cells.
const valueWidth = 70

const propertyHeader = "Property"
const valueHeader = "Value"

// Renderer implements render.Renderer for the table layout.
type Renderer struct{}

// New constructs the table renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "table"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render emits the bordered table. The property column is sized to the
// longest field name (never narrower than the header); rows keep the record's
// insertion order.
func (r *Renderer) Render(ctx context.Context, rec *record.Record, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nameWidth := len([]rune(propertyHeader))
	for _, field := range rec.Fields() {
		if w := len([]rune(field.Name)); w > nameWidth {
			nameWidth = w
		}
	}

	border := "+" + strings.Repeat("-", nameWidth+2) + "+" + strings.Repeat("-", valueWidth+2) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString(row(propertyHeader, valueHeader, nameWidth) + "\n")
	b.WriteString(border + "\n")

	if rec.Len() == 0 {
		return []byte(b.String()), nil
	}

	for _, field := range rec.Fields() {
		value := render.FormatValue(field.Value, 0).String()
		b.WriteString(row(field.Name, render.Truncate(value, valueWidth), nameWidth) + "\n")
	}
	b.WriteString(border + "\n")

	return []byte(b.String()), nil
}

func row(name, value string, nameWidth int) string {
	return "| " + pad(name, nameWidth) + " | " + pad(value, valueWidth) + " |"
}

func pad(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
