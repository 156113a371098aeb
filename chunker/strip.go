package chunker

import "regexp"

// Comment stripping is a textual filter: it removes comment-like substrings
// without parsing the code, so strings that merely look like comments may be
// affected. Acceptable for a size-reduction pass, not a semantic transform.
var (
	docstringPattern   = regexp.MustCompile(`(?s)""".*?"""\n`)
	lineCommentPattern = regexp.MustCompile(`# .*?\n`)
)

// StripComments removes triple-quoted documentation blocks and line comments
// starting with "# ".
func StripComments(content string) string {
	stripped := docstringPattern.ReplaceAllString(content, "")
	return lineCommentPattern.ReplaceAllString(stripped, "")
}
