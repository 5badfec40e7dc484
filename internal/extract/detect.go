package extract

import "strings"

// Kind classifies an uploaded document.
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindTeX     Kind = "tex"
	KindUnknown Kind = "unknown"
)

// DetectKind classifies a file from its name and declared content type.
// The content type is checked before the extension for each kind, so a .docx
// named file declared as application/pdf is treated as a PDF.
func DetectKind(fileName string, contentType string) Kind {
	name := strings.ToLower(strings.TrimSpace(fileName))
	mime := strings.ToLower(contentType)

	switch {
	case strings.Contains(mime, "pdf") || strings.HasSuffix(name, ".pdf"):
		return KindPDF
	case strings.Contains(mime, "word") || strings.HasSuffix(name, ".docx"):
		return KindDOCX
	case strings.HasSuffix(name, ".tex"):
		return KindTeX
	default:
		return KindUnknown
	}
}
