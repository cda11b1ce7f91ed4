// Package tree renders an analysis record as a depth-first branch diagram.
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
)

// Scalar values are capped at maxScalar characters (maxScalar-3 plus "...").
const maxScalar = 60

const defaultTitle = "Analysis Record"

const (
	branchGlyph  = "|-- "
	lastGlyph    = "+-- "
	continueMark = "|   "
	lastMark     = "    "
)

// Renderer implements render.Renderer for the tree layout.
type Renderer struct{}

// New constructs the tree renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tree"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render walks the record depth-first in field order. Nested records recurse;
// arrays are summarized by element count instead of being expanded. "Last
// sibling" is decided per recursion level, so the closing glyph resets inside
// every nested record.
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
	writeFields(&b, rec, "")
	return []byte(b.String()), nil
}

func writeFields(b *strings.Builder, rec *record.Record, prefix string) {
	fields := rec.Fields()
	for i, field := range fields {
		last := i == len(fields)-1
		glyph := branchGlyph
		if last {
			glyph = lastGlyph
		}

		switch v := field.Value.(type) {
		case *record.Record:
			b.WriteString(prefix + glyph + field.Name + "\n")
			child := prefix + continueMark
			if last {
				child = prefix + lastMark
			}
			writeFields(b, v, child)
		case []any:
			fmt.Fprintf(b, "%s%s%s : [%d items]\n", prefix, glyph, field.Name, len(v))
		default:
			value := render.Truncate(render.FormatScalar(v), maxScalar)
			b.WriteString(prefix + glyph + field.Name + " : " + value + "\n")
		}
	}
}
