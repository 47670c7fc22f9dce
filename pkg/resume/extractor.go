// Package resume turns opaque resume documents into plain text for prompt
// building. Extraction is best effort and never fails: when a document cannot
// be parsed the raw bytes are decoded permissively instead.
package resume

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// NoContent is returned when no resume document was provided.
const NoContent = "no résumé provided"

// Extract returns the plain text of a resume document. PDF documents are
// parsed page by page; anything else, or a PDF that yields no text, is decoded
// as UTF-8 with invalid sequences dropped.
func Extract(content []byte) string {
	if len(content) == 0 {
		return NoContent
	}

	if text := extractPDF(content); strings.TrimSpace(text) != "" {
		return text
	}

	return decodePermissive(content)
}

func extractPDF(content []byte) (text string) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages instead of failing entirely.
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	return builder.String()
}

func decodePermissive(content []byte) string {
	text := string(content)
	if !utf8.Valid(content) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return NoContent
	}
	return text
}
