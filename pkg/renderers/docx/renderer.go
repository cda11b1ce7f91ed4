// Package docx renders analysis records into Word documents.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	godocx "github.com/fumiama/go-docx"

	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
)

// DefaultTitle heads single-file reports when no override is supplied.
const DefaultTitle = "Agent Analysis Report"

// Metadata table values are capped at this many characters.
const maxMetadataLen = 100

// metadataFields is the recognized field set, in presentation order. Records
// may carry additional fields; the document renderer ignores them so newer
// agent outputs stay convertible.
var metadataFields = []string{"agent", "agent_name", "ticker", "date", "timestamp", "status"}

const tableWidth = 8500

// Renderer implements render.Renderer for the document layout.
type Renderer struct {
	title string
	now   func() time.Time
}

// Option customises the renderer.
type Option func(*Renderer)

// WithTitle overrides the report title used for every document.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithClock injects the time source for the generation footer.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New constructs a document renderer with defaults.
func New(options ...Option) *Renderer {
	r := &Renderer{
		title: DefaultTitle,
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "docx"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Render produces a complete single-record document as OOXML bytes.
func (r *Renderer) Render(ctx context.Context, rec *record.Record, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := r.NewDocument()
	r.WriteReport(doc, rec, options)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("docx: serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// NewDocument returns an empty document with the default theme. Combine-mode
// callers build one document and append a section per record.
func (r *Renderer) NewDocument() *godocx.Docx {
	return godocx.New().WithDefaultTheme()
}

// WriteReport writes the full single-record report: title block, metadata
// table, analysis section, and generation footer.
func (r *Renderer) WriteReport(doc *godocx.Docx, rec *record.Record, options render.Options) {
	title := options.Title
	if title == "" {
		title = r.title
	}

	titlePara := doc.AddParagraph()
	titlePara.Justification("center")
	titlePara.AddText(title).Size("36").Bold()

	subtitle := doc.AddParagraph()
	subtitle.Justification("center")
	subtitle.AddText(subtitleFor(rec)).Size("24").Italic().Color("595959")

	doc.AddParagraph()

	r.writeSectionHeading(doc, "Metadata", 1)
	r.writeMetadataTable(doc, rec)

	if analysis := rec.GetString("analysis", ""); analysis != "" {
		r.writeSectionHeading(doc, "Analysis Report", 1)
		r.writeAnalysis(doc, analysis)
	}

	r.WriteFooter(doc, options)
}

// WriteSection writes a combine-mode section: a per-record heading, the
// metadata table, and the analysis body. No title block or footer.
func (r *Renderer) WriteSection(doc *godocx.Docx, rec *record.Record) {
	r.writeSectionHeading(doc, subtitleFor(rec), 1)
	r.writeMetadataTable(doc, rec)

	if analysis := rec.GetString("analysis", ""); analysis != "" {
		r.writeSectionHeading(doc, "Analysis Details", 2)
		r.writeAnalysis(doc, analysis)
	}
}

// WriteTitlePage writes the combined-document title page.
func (r *Renderer) WriteTitlePage(doc *godocx.Docx, title string) {
	if title == "" {
		title = r.title + " - Combined"
	}
	para := doc.AddParagraph()
	para.Justification("center")
	para.AddText(title).Size("36").Bold()
	doc.AddParagraph()
}

// WriteFooter appends the generation-timestamp footer.
func (r *Renderer) WriteFooter(doc *godocx.Docx, options render.Options) {
	at := options.GeneratedAt
	if at.IsZero() {
		at = r.now()
	}

	text := "Generated on " + at.Format("2006-01-02 15:04:05")
	if options.SourceName != "" {
		text += " | Source: " + options.SourceName
	}

	doc.AddParagraph()
	footer := doc.AddParagraph()
	footer.Justification("center")
	footer.AddText(text).Size("18").Italic().Color("808080")
}

// AddPageBreak separates combine-mode sections.
func (r *Renderer) AddPageBreak(doc *godocx.Docx) {
	doc.AddParagraph().AddPageBreaks()
}

func (r *Renderer) writeSectionHeading(doc *godocx.Docx, text string, level int) {
	size := "32"
	if level > 1 {
		size = "28"
	}
	para := doc.AddParagraph()
	para.AddText(text).Size(size).Bold().Color("1F4E79")
}

func (r *Renderer) writeMetadataTable(doc *godocx.Docx, rec *record.Record) {
	rows := 1
	for _, name := range metadataFields {
		if _, ok := rec.Get(name); ok {
			rows++
		}
	}

	table := doc.AddTable(rows, 2, tableWidth, nil)
	header := table.TableRows[0]
	header.TableCells[0].AddParagraph().AddText("Property").Bold()
	header.TableCells[1].AddParagraph().AddText("Value").Bold()

	row := 1
	for _, name := range metadataFields {
		value, ok := rec.Get(name)
		if !ok {
			continue
		}
		cells := table.TableRows[row].TableCells
		cells[0].AddParagraph().AddText(displayName(name))
		cells[1].AddParagraph().AddText(render.Truncate(render.FormatScalar(value), maxMetadataLen))
		row++
	}

	doc.AddParagraph()
}

func (r *Renderer) writeAnalysis(doc *godocx.Docx, analysis string) {
	for _, blk := range parseBlocks(analysis) {
		switch blk.kind {
		case blockHeading1:
			doc.AddParagraph().AddText(blk.text).Size("30").Bold()
		case blockHeading2:
			doc.AddParagraph().AddText(blk.text).Size("28").Bold()
		case blockHeading3:
			doc.AddParagraph().AddText(blk.text).Size("26").Bold()
		case blockBullet:
			doc.AddParagraph().AddText("• " + blk.text)
		default:
			doc.AddParagraph().AddText(blk.text)
		}
	}
}

// displayName turns a snake_case field name into the title-cased label shown
// in the metadata table ("agent_name" becomes "Agent Name").
func displayName(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func subtitleFor(rec *record.Record) string {
	agentName := rec.GetString("agent_name", "Unknown Agent")
	ticker := rec.GetString("ticker", "N/A")
	date := rec.GetString("date", "N/A")
	return fmt.Sprintf("%s - %s (%s)", agentName, ticker, date)
}
