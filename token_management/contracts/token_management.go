package contracts

// ITokenManagement accumulates the size of produced chunks for the session.
type ITokenManagement interface {
	AddChunk(chars int, tokens int)
	GetUsage() (chars int, tokens int, chunks int)
	DisplayUsage(maxChars int, maxTokens int)
	ClearUsage()
}
