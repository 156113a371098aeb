package token_management

import (
	"fmt"

	"pyclip/constants/lipgloss"
	"pyclip/token_management/contracts"
)

// TokenManager implementation
type tokenManager struct {
	totalChars  int
	totalTokens int
	chunkCount  int
}

// NewTokenManager creates a new token manager
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// AddChunk accumulates the character and token counts for the session.
func (tm *tokenManager) AddChunk(chars int, tokens int) {
	tm.totalChars += chars
	tm.totalTokens += tokens
	tm.chunkCount++
}

func (tm *tokenManager) GetUsage() (chars int, tokens int, chunks int) {
	return tm.totalChars, tm.totalTokens, tm.chunkCount
}

// DisplayUsage renders the aggregate counts, plus the per-chunk budgets when
// the output was split.
func (tm *tokenManager) DisplayUsage(maxChars int, maxTokens int) {
	usage := fmt.Sprintf("Total characters: %d - Total tokens: %d - Chunks: %d", tm.totalChars, tm.totalTokens, tm.chunkCount)

	usageBox := lipgloss.BoxStyle.Render(usage)
	fmt.Println(usageBox)

	if tm.chunkCount > 1 {
		if maxChars > 0 {
			fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  (%d characters per chunk.)", maxChars)))
		}
		if maxTokens > 0 {
			fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  (%d tokens per chunk.)", maxTokens)))
		}
	}
}

func (tm *tokenManager) ClearUsage() {
	tm.totalChars = 0
	tm.totalTokens = 0
	tm.chunkCount = 0
}
