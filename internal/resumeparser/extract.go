// Package resumeparser extracts text from uploaded résumés and derives the
// parsed document stored alongside them.
package resumeparser

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported upload format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

var ErrUnsupportedFormat = errors.New("unsupported résumé format")

var contentTypes = map[Format][]string{
	FormatPDF:  {"application/pdf", "application/x-pdf"},
	FormatDOC:  {"application/msword"},
	FormatDOCX: {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

// DetectFormat checks the file extension and, when given, the declared content type.
// application/octet-stream is accepted since browsers send it for unknown types.
func DetectFormat(fileName, contentType string) (Format, error) {
	format := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), "."))
	allowed, ok := contentTypes[format]
	if !ok {
		return "", ErrUnsupportedFormat
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if contentType == "" || contentType == "application/octet-stream" {
		return format, nil
	}
	for _, ct := range allowed {
		if ct == contentType {
			return format, nil
		}
	}
	return "", ErrUnsupportedFormat
}

// ContentType returns the canonical MIME type for format.
func (f Format) ContentType() string {
	if types, ok := contentTypes[f]; ok {
		return types[0]
	}
	return "application/octet-stream"
}

// ExtractText returns the plain text of a document. Legacy .doc files are
// binary and yield no text.
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatDOC:
		return "", nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages instead of failing entirely
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return normalizeText(sb.String()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return normalizeText(unescapeXML(content)), nil
}

var xmlEntities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}

// normalizeText trims every line and collapses runs of blank lines.
func normalizeText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
