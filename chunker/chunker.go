package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

const (
	// closingFence seals every chunk so each one stays valid markdown.
	closingFence = "\n```\n"
	// continuationMarker prefixes a fragment produced by splitting one
	// oversized file across chunks.
	continuationMarker = "\n```\n# The cord continued.\n"
)

// CountFunc measures the token cost of a text. The chunker only compares
// the returned integer against the token budget; counting itself is an
// external capability.
type CountFunc func(text string) int

// Chunk is one bounded unit of serialized output.
type Chunk struct {
	Content string
	Chars   int
	Tokens  int
	// Oversize marks the irreducible case: a single line that alone
	// exceeds a budget. Such a chunk violates the bounds and is flagged
	// instead of silently emitted.
	Oversize bool
}

// ContentChunker reads resolved files, wraps each in a fenced block, and
// packs the blocks into chunks bounded by character and token budgets.
type ContentChunker struct {
	Root          string
	MaxChars      int
	MaxTokens     int
	StripComments bool

	countTokens CountFunc
}

// NewContentChunker creates a chunker with the given budgets. countTokens
// must be deterministic for a given text.
func NewContentChunker(root string, maxChars int, maxTokens int, stripComments bool, countTokens CountFunc) *ContentChunker {
	return &ContentChunker{
		Root:          root,
		MaxChars:      maxChars,
		MaxTokens:     maxTokens,
		StripComments: stripComments,
		countTokens:   countTokens,
	}
}

// Chunk serializes the files in the order supplied by the walker. A block
// that no longer fits the open chunk seals it and opens a new one; a block
// that alone exceeds a budget is split at line boundaries.
func (c *ContentChunker) Chunk(paths []string) []Chunk {
	var contents []string

	for _, relativePath := range paths {
		code, err := c.readFile(relativePath)
		if err != nil {
			pterm.Warning.Printfln("Skipping unreadable file %s: %v", relativePath, err)
			continue
		}

		block := FormatBlock(relativePath, code)

		if len(contents) == 0 || c.exceeds(contents[len(contents)-1]+block) {
			if c.exceeds(block) {
				contents = append(contents, c.splitBlock(block)...)
			} else {
				contents = append(contents, block)
			}
		} else {
			contents[len(contents)-1] += block
		}
	}

	chunks := make([]Chunk, 0, len(contents))
	for _, content := range contents {
		chunks = append(chunks, Chunk{
			Content:  content,
			Chars:    len(content),
			Tokens:   c.countTokens(content),
			Oversize: c.exceeds(content),
		})
	}
	return chunks
}

// FormatBlock wraps a file's content in the fenced delimiter template. The
// format is a compatibility surface for downstream tooling.
func FormatBlock(relativePath string, code string) string {
	return fmt.Sprintf("\n```\n# %s\n%s\n```\n", relativePath, code)
}

// splitBlock breaks an oversized block at line boundaries. Every sealed
// fragment ends with a closing fence and every continuation starts with the
// continuation marker, so each fragment is independently valid.
func (c *ContentChunker) splitBlock(block string) []string {
	rows := strings.Split(block, "\n")
	fragments := []string{rows[0]}

	for _, row := range rows[1:] {
		last := len(fragments) - 1
		probe := fragments[last] + "\n" + row + closingFence
		if len(probe) > c.MaxChars || c.countTokens(probe) > c.MaxTokens {
			fragments[last] += closingFence
			fragments = append(fragments, continuationMarker+row)
		} else {
			fragments[last] += "\n" + row
		}
	}

	return fragments
}

func (c *ContentChunker) exceeds(content string) bool {
	return len(content) > c.MaxChars || c.countTokens(content) > c.MaxTokens
}

func (c *ContentChunker) readFile(relativePath string) (string, error) {
	content, err := os.ReadFile(filepath.Join(c.Root, relativePath))
	if err != nil {
		return "", err
	}
	code := string(content)
	if c.StripComments {
		code = StripComments(code)
	}
	return code, nil
}
