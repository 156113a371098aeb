package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderChunkPreview prints a chunk to the terminal with syntax
// highlighting, with cancellation support. Lines inside the fenced blocks
// are highlighted as Python; fences and path markers print as-is.
func RenderChunkPreview(ctx context.Context, content string, theme string) error {
	insideCodeBlock := false
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if i%5 == 0 {
			select {
			case <-ctx.Done():
				fmt.Println("\nPreview interrupted...")
				return ctx.Err()
			default:
			}
		}

		if strings.HasPrefix(line, "```") {
			insideCodeBlock = !insideCodeBlock
			fmt.Println(line)
			continue
		}

		if !insideCodeBlock {
			fmt.Println(line)
			continue
		}

		var buf bytes.Buffer
		if err := quick.Highlight(&buf, line+"\n", "python", "terminal256", theme); err != nil {
			return fmt.Errorf("error rendering preview: %w", err)
		}
		fmt.Print(buf.String())
	}

	return nil
}
