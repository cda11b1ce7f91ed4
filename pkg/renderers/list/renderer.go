// Package list renders an analysis record as a field-per-line listing.
package list

import (
	"context"
	"strings"

	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
)

// Values longer than this collapse to maxInline-3 characters plus "..." when
// shown on the field's own line.
const maxInline = 80

const defaultTitle = "Analysis Record"

// Renderer implements render.Renderer for the list layout.
type Renderer struct{}

// New constructs the list renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "list"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render emits a banner line followed by one entry per field, in insertion
// order, with a blank line between entries. Single-line values appear as
// "<field> : <value>"; multi-line values put the field name alone on its line
// followed by the value's indented block.
func (r *Renderer) Render(ctx context.Context, rec *record.Record, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := options.Title
	if title == "" {
		title = defaultTitle
	}

	var b strings.Builder
	b.WriteString("===== " + title + " =====\n")

	for i, field := range rec.Fields() {
		if i > 0 {
			b.WriteString("\n")
		}
		fv := render.FormatValue(field.Value, 1)
		if !fv.Multiline() {
			b.WriteString(field.Name + " : " + render.Truncate(fv.String(), maxInline) + "\n")
			continue
		}
		b.WriteString(field.Name + " :\n")
		for _, line := range fv.Lines() {
			b.WriteString(line + "\n")
		}
	}

	return []byte(b.String()), nil
}
