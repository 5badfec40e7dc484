package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedKind is returned for kinds without an extraction strategy.
var ErrUnsupportedKind = errors.New("unsupported document kind")

// TextFunc converts a raw document buffer into plain text.
type TextFunc func(data []byte) (string, error)

// Extractor selects a text extraction strategy by document kind.
// PDF and DOCX are pluggable so callers can swap the parsing capability.
type Extractor struct {
	PDF  TextFunc
	DOCX TextFunc
}

// New returns an Extractor backed by github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOCX).
func New() *Extractor {
	return &Extractor{PDF: PDFText, DOCX: DOCXText}
}

// Extract returns the plain text of data interpreted as kind.
func (e *Extractor) Extract(ctx context.Context, data []byte, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch kind {
	case KindPDF:
		return runText(e.pdfFunc(), data, kind)
	case KindDOCX:
		return runText(e.docxFunc(), data, kind)
	case KindTeX:
		return StripLaTeX(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}

func (e *Extractor) pdfFunc() TextFunc {
	if e == nil || e.PDF == nil {
		return PDFText
	}
	return e.PDF
}

func (e *Extractor) docxFunc() TextFunc {
	if e == nil || e.DOCX == nil {
		return DOCXText
	}
	return e.DOCX
}

func runText(fn TextFunc, data []byte, kind Kind) (string, error) {
	text, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	return text, nil
}

// PDFText returns the text layer of a PDF. Image-only documents yield little
// or no text; there is no OCR fallback.
func PDFText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	// the parser panics on some malformed xref tables
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DOCXText returns the body text of a DOCX document without formatting.
func DOCXText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent())
}

func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			case "tab":
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
