package render

import "time"

// Options carries per-request rendering instructions. The zero value is valid
// for every renderer.
type Options struct {
	// Title overrides the banner (text layouts) or report title (document
	// layout). Empty selects the renderer's default.
	Title string

	// SourceName is the input file name surfaced in the document footer.
	SourceName string

	// GeneratedAt pins the timestamp used by the document footer. The zero
	// value means "now"; tests pin it for deterministic output.
	GeneratedAt time.Time
}
