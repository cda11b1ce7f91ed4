package docx

import "strings"

// The analysis field carries markdown-flavored free text. Only a minimal
// subset is recognized: #-prefixed headings, bullet markers, and paragraphs.
// Everything else passes through verbatim.

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading1
	blockHeading2
	blockHeading3
	blockBullet
)

type block struct {
	kind blockKind
	text string
}

// parseBlocks splits markdown-flavored text into styled blocks. Blank lines
// are dropped; heading markers are consumed, deepest prefix first.
func parseBlocks(text string) []block {
	var blocks []block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "###"):
			blocks = append(blocks, block{blockHeading3, strings.TrimSpace(strings.TrimPrefix(line, "###"))})
		case strings.HasPrefix(line, "##"):
			blocks = append(blocks, block{blockHeading2, strings.TrimSpace(strings.TrimPrefix(line, "##"))})
		case strings.HasPrefix(line, "#"):
			blocks = append(blocks, block{blockHeading1, strings.TrimSpace(strings.TrimPrefix(line, "#"))})
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"), strings.HasPrefix(line, "*"):
			blocks = append(blocks, block{blockBullet, strings.TrimSpace(strings.TrimLeft(line, "-•*"))})
		default:
			blocks = append(blocks, block{blockParagraph, line})
		}
	}
	return blocks
}
