package extract

import "regexp"

var (
	texComment = regexp.MustCompile(`(?m)%.*$`)
	texCommand = regexp.MustCompile(`\\[a-zA-Z]+(\[[^\]]*\])?(\{[^}]*\})?`)
	texBrace   = regexp.MustCompile(`[{}]`)
)

// StripLaTeX turns LaTeX source into rough plain text.
//
// Line comments are dropped, \name[opt]{arg} commands and bare braces are
// replaced by a space. Nested braces, macros and multi-argument commands are
// not understood, so stray fragments can survive.
func StripLaTeX(src string) string {
	text := texComment.ReplaceAllString(src, "")
	text = texCommand.ReplaceAllString(text, " ")
	return texBrace.ReplaceAllString(text, " ")
}
