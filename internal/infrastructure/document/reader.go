package document

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"career-compass/internal/usecase"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensions = []struct {
	ext  string
	kind string
}{
	{".txt", MimeText},
	{".text", MimeText},
	{".md", MimeText},
	{".pdf", MimePDF},
	{".docx", MimeDocx},
}

// Extensions lists the file extensions ReadText accepts.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for _, e := range extensions {
		out = append(out, e.ext)
	}
	return out
}

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadText extracts plain text from txt, pdf and docx uploads. The file
// extension wins over the declared content type.
func (r *Reader) ReadText(_ context.Context, filename, contentType string, data []byte) (string, error) {
	switch detectKind(filename, contentType) {
	case MimeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text file is not valid utf-8")
		}
		return string(data), nil
	case MimePDF:
		return extractPDFText(data)
	case MimeDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: file=%q content_type=%q", usecase.ErrUnsupportedDocument, filename, contentType)
	}
}

func detectKind(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range extensions {
		if e.ext == ext {
			return e.kind
		}
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case MimeText, MimePDF, MimeDocx:
		return ct
	}
	return ""
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
