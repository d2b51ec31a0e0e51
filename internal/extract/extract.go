package extract

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxHintRunes = 20000

// TextHint pulls the text layer out of a PDF to accompany the page images
// sent to the vision model. Scanned PDFs have no text layer; any failure
// yields an empty hint rather than an error since the vision pass works
// without it.
func TextHint(ctx context.Context, data []byte, contentType string) string {
	if err := ctx.Err(); err != nil {
		return ""
	}
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if clean != "application/pdf" {
		return ""
	}
	text, err := extractPDF(data)
	if err != nil {
		return ""
	}
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxHintRunes {
		text = string(runes[:maxHintRunes])
	}
	return text
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
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
