package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"pyclip/constants/lipgloss"
)

// PausePrompt waits for the user to press Enter before the next chunk is
// transferred, with context cancellation support.
func PausePrompt(ctx context.Context, reader *bufio.Reader) error {
	lineChan := make(chan struct{}, 1)
	errChan := make(chan error, 1)

	go func() {
		fmt.Print(lipgloss.BlueSky.Render("\nPress Enter to continue..."))

		_, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			errChan <- fmt.Errorf("error reading input: %w", err)
			return
		}
		lineChan <- struct{}{}
	}()

	select {
	case <-ctx.Done():
		fmt.Println() // Print newline for clean exit
		return ctx.Err()
	case err := <-errChan:
		return err
	case <-lineChan:
		return nil
	}
}
