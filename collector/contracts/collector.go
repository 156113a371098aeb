package contracts

// IDependencyWalker resolves the transitive import closure of seed files.
type IDependencyWalker interface {
	// Walk returns the ordered, deduplicated set of files reachable from the
	// seeds within depthLimit hops, restricted to the candidate set. A newly
	// visited file is placed ahead of everything visited before it, so a
	// direct import chain reads dependency-first; files discovered in the
	// same traversal level keep their discovery order relative to each
	// other.
	Walk(seeds []string, candidates map[string]bool, depthLimit int) []string
}
