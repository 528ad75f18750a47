// Package chunker splits raw document text into overlapping, bounded-size
// segments with positional metadata.
package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/ragdex/internal/domain/chunk"
)

// Default chunking constants. Empirically chosen; kept as configuration
// defaults rather than re-derived.
const (
	DefaultChunkSize  = 400
	DefaultOverlap    = 80
	DefaultMinContent = 20
)

// Chunker accumulates paragraphs into chunks around a target size,
// seeding each chunk with the tail of the previous one.
type Chunker struct {
	size       int
	overlap    int
	minContent int
}

// New creates a chunker. Non-positive parameters fall back to defaults.
func New(size, overlap, minContent int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	if minContent <= 0 {
		minContent = DefaultMinContent
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Chunker{size: size, overlap: overlap, minContent: minContent}
}

// paragraph is a blank-line-delimited span of the cleaned text.
type paragraph struct {
	text  string
	start int
	end   int
}

// piece is a flushed buffer pending chunk construction; totals are
// back-filled once the whole document has been consumed.
type piece struct {
	content string
	start   int
	end     int
}

// Chunk splits text into an ordered chunk sequence. Pure function of its
// input: the same text always yields byte-identical chunks.
//
// Paragraphs are accumulated until appending the next one would push the
// buffer past the size target, then the buffer is flushed and the next one
// is seeded with the flushed buffer's tail. A single paragraph longer than
// the target is not split further: oversized chunks are preferred over
// mid-sentence breaks.
func (c *Chunker) Chunk(text, source string) []chunk.Chunk {
	paras := splitParagraphs(cleanText(text))
	if len(paras) == 0 {
		return nil
	}

	var pieces []piece

	var buf strings.Builder
	bufStart, bufEnd := 0, 0

	flush := func() {
		content := buf.String()
		if len(strings.TrimSpace(content)) >= c.minContent {
			pieces = append(pieces, piece{content: content, start: bufStart, end: bufEnd})
		}
	}

	for _, p := range paras {
		switch {
		case buf.Len() == 0:
			buf.WriteString(p.text)
			bufStart, bufEnd = p.start, p.end
		case buf.Len()+2+len(p.text) > c.size:
			flush()
			tail := overlapTail(buf.String(), c.overlap)
			buf.Reset()
			buf.WriteString(tail)
			buf.WriteString("\n\n")
			buf.WriteString(p.text)
			bufStart = bufEnd - len(tail)
			if bufStart < 0 {
				bufStart = 0
			}
			bufEnd = p.end
		default:
			buf.WriteString("\n\n")
			buf.WriteString(p.text)
			bufEnd = p.end
		}
	}
	if buf.Len() > 0 {
		flush()
	}

	chunks := make([]chunk.Chunk, 0, len(pieces))
	for i, p := range pieces {
		ck, err := chunk.New(
			chunkID(source, i), p.content, source,
			chunk.Position{Index: i, Total: len(pieces), CharStart: p.start, CharEnd: p.end},
		)
		if err != nil {
			// Pieces already passed the noise filter; invalid offsets here
			// would mean a chunker bug, so they are dropped rather than
			// surfaced to ingestion.
			continue
		}
		chunks = append(chunks, ck)
	}
	return chunks
}

// cleanText normalizes line endings so offsets are stable across platforms.
func cleanText(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// splitParagraphs slices text on blank-line boundaries, keeping the offsets
// of each trimmed paragraph within the cleaned text.
func splitParagraphs(text string) []paragraph {
	var paras []paragraph
	offset := 0
	for _, raw := range strings.Split(text, "\n\n") {
		start := offset
		offset += len(raw) + 2

		// Trim while tracking offsets.
		trimmedLeft := strings.TrimLeft(raw, " \t\n")
		start += len(raw) - len(trimmedLeft)
		trimmed := strings.TrimRight(trimmedLeft, " \t\n")
		if trimmed == "" {
			continue
		}
		paras = append(paras, paragraph{text: trimmed, start: start, end: start + len(trimmed)})
	}
	return paras
}

// overlapTail returns the last n bytes of s, advanced to a rune boundary.
func overlapTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}

// chunkID derives a deterministic identifier from the source title and the
// chunk's sequence index.
func chunkID(source string, index int) string {
	return fmt.Sprintf("%s-%d", slugify(source), index)
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
