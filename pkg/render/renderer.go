package render

import (
	"context"

	"github.com/karantnn/GitCode/pkg/record"
)

// Renderer converts a record into a byte representation (plain text for the
// list/table/tree layouts, OOXML for the document renderer).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, rec *record.Record, options Options) ([]byte, error)
}
