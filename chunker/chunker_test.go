package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noTokenLimit disables the token budget so tests exercise one bound at a
// time.
const noTokenLimit = 1 << 40

// countByLength approximates tokens at four characters apiece.
func countByLength(text string) int {
	return len(text) / 4
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chunker_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for path, content := range files {
		full := filepath.Join(tempDir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return tempDir
}

// codeOfBlockLength returns content sized so the formatted block for path
// has exactly want characters.
func codeOfBlockLength(t *testing.T, path string, want int) string {
	t.Helper()
	overhead := len(FormatBlock(path, ""))
	require.Greater(t, want, overhead)
	return strings.Repeat("x", want-overhead)
}

func TestContentChunker_SingleChunk(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
	})

	c := NewContentChunker(root, 1000, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"a.py", "b.py"})

	require.Len(t, chunks, 1)
	assert.Equal(t, FormatBlock("a.py", "x = 1\n")+FormatBlock("b.py", "y = 2\n"), chunks[0].Content)
	assert.Equal(t, len(chunks[0].Content), chunks[0].Chars)
	assert.Equal(t, countByLength(chunks[0].Content), chunks[0].Tokens)
	assert.False(t, chunks[0].Oversize)
}

func TestContentChunker_SealsWhenCharBudgetWouldOverflow(t *testing.T) {
	codeA := codeOfBlockLength(t, "a.py", 30)
	codeB := codeOfBlockLength(t, "b.py", 40)
	root := writeFiles(t, map[string]string{"a.py": codeA, "b.py": codeB})

	// 30 <= 50 but 30+40 > 50: the second block opens a fresh chunk.
	c := NewContentChunker(root, 50, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"a.py", "b.py"})

	require.Len(t, chunks, 2)
	assert.Equal(t, FormatBlock("a.py", codeA), chunks[0].Content)
	assert.Equal(t, FormatBlock("b.py", codeB), chunks[1].Content)
	assert.Equal(t, 30, chunks[0].Chars)
	assert.Equal(t, 40, chunks[1].Chars)
}

func TestContentChunker_TokenBudgetSealsToo(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py": "aaaa\n",
		"b.py": "bbbb\n",
	})

	blockTokens := countByLength(FormatBlock("a.py", "aaaa\n"))
	c := NewContentChunker(root, 1<<40, blockTokens, false, countByLength)
	chunks := c.Chunk([]string{"a.py", "b.py"})

	require.Len(t, chunks, 2)
}

func TestContentChunker_SplitsOversizedBlock(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("line_%02d = %d", i, i))
	}
	code := strings.Join(lines, "\n") + "\n"
	root := writeFiles(t, map[string]string{"big.py": code})

	c := NewContentChunker(root, 120, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"big.py"})

	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Chars, 120, "chunk %d exceeds budget", i)
		assert.False(t, chunk.Oversize)
	}

	// Continuation fragments carry the marker and every fragment is fenced.
	for _, chunk := range chunks[1:] {
		assert.True(t, strings.HasPrefix(chunk.Content, continuationMarker))
	}
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk.Content, closingFence))
	}
}

func TestContentChunker_SplitIsLossless(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("value_%02d = %d", i, i))
	}
	code := strings.Join(lines, "\n") + "\n"
	root := writeFiles(t, map[string]string{"big.py": code})

	c := NewContentChunker(root, 150, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"big.py"})
	require.Greater(t, len(chunks), 1)

	var joined strings.Builder
	for _, chunk := range chunks {
		joined.WriteString(chunk.Content)
	}

	// Removing the injected seam markers reproduces the original block.
	restored := strings.ReplaceAll(joined.String(), closingFence+continuationMarker, "\n")
	assert.Equal(t, FormatBlock("big.py", code), restored)
}

func TestContentChunker_OversizedLineIsFlagged(t *testing.T) {
	longLine := strings.Repeat("z", 200) + "\n"
	root := writeFiles(t, map[string]string{"wide.py": longLine})

	c := NewContentChunker(root, 50, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"wide.py"})

	flagged := false
	for _, chunk := range chunks {
		if chunk.Oversize {
			flagged = true
			assert.Greater(t, chunk.Chars, 50)
		}
	}
	assert.True(t, flagged, "an irreducible oversized line must be flagged")
}

func TestContentChunker_SkipsUnreadableFiles(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.py": "x = 1\n"})

	c := NewContentChunker(root, 1000, noTokenLimit, false, countByLength)
	chunks := c.Chunk([]string{"ghost.py", "a.py"})

	require.Len(t, chunks, 1)
	assert.Equal(t, FormatBlock("a.py", "x = 1\n"), chunks[0].Content)
}

func TestContentChunker_StripComments(t *testing.T) {
	source := "\"\"\"Module docstring.\n\nSpans lines.\n\"\"\"\ndef f():\n    # implementation note\n    return 1\n"
	root := writeFiles(t, map[string]string{"doc.py": source})

	c := NewContentChunker(root, 1000, noTokenLimit, true, countByLength)
	chunks := c.Chunk([]string{"doc.py"})

	require.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0].Content, "Module docstring")
	assert.NotContains(t, chunks[0].Content, "implementation note")
	assert.Contains(t, chunks[0].Content, "return 1")
}

func TestStripComments(t *testing.T) {
	in := "\"\"\"doc\"\"\"\nx = 1\n# standalone comment\ny = 2  # trailing note\n"
	out := StripComments(in)

	assert.NotContains(t, out, "doc")
	assert.NotContains(t, out, "standalone")
	assert.NotContains(t, out, "trailing")
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "y = 2")
}

func TestStripComments_KeepsShebangAndBareHash(t *testing.T) {
	in := "#!/usr/bin/env python3\n#comment without space survives the filter\nx = 1\n"
	out := StripComments(in)

	assert.Contains(t, out, "#!/usr/bin/env python3")
	assert.Contains(t, out, "#comment without space")
}

func TestFormatBlock(t *testing.T) {
	block := FormatBlock("pkg/mod.py", "pass\n")
	assert.Equal(t, "\n```\n# pkg/mod.py\npass\n\n```\n", block)
}
