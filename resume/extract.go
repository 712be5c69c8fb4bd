// Package resume extracts plain text from uploaded PDF and DOCX resumes so
// the boundary can inject it into the prompt as a RESUME_CONTEXT block.
package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/placementsprint/sprintd/errors"
)

const (
	// MaxFileBytes caps the accepted upload size.
	MaxFileBytes = 2 << 20

	// MinExtractedChars is the floor below which an extraction is treated as
	// unusable (scanned PDFs, image-only documents).
	MinExtractedChars = 50

	maxPDFPages       = 10
	maxDocxParagraphs = 400
	maxChars          = 12000

	truncationMarker = "\n\n[Truncated resume text to 12k chars]"
)

// ContentTypes maps the accepted upload MIME types to an extraction kind.
var ContentTypes = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

// Extract dispatches on the kind returned by ContentTypes and cleans the
// result. The returned text is bounded to 12000 chars with a marker appended
// when truncated.
func Extract(kind string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case "pdf":
		text, err = fromPDF(data)
	case "docx":
		text, err = fromDOCX(data)
	default:
		return "", errors.New(errors.KindInvalidRequest, "unsupported resume kind %q", kind)
	}
	if err != nil {
		return "", err
	}
	return Clean(text), nil
}

// Clean strips NUL bytes, trims surrounding whitespace and bounds the text so
// it cannot explode the prompt's token budget.
func Clean(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
	runes := []rune(s)
	if len(runes) > maxChars {
		s = string(runes[:maxChars]) + truncationMarker
	}
	return s
}

// fromPDF reads the first maxPDFPages pages, skipping pages whose text cannot
// be decoded.
func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrapf(err, "opening PDF")
	}

	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var parts []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// fromDOCX reads word/document.xml out of the zip container and joins the
// first maxDocxParagraphs non-empty paragraphs.
func fromDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrapf(err, "opening DOCX container")
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New(errors.KindInvalidRequest, "DOCX has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", errors.Wrapf(err, "opening document.xml")
	}
	defer rc.Close()

	return docxParagraphs(rc)
}

// docxParagraphs walks the WordprocessingML token stream collecting the text
// runs (<w:t>) of each paragraph (<w:p>). Only the first maxDocxParagraphs
// paragraphs of the document are read, empty ones counting toward the cap.
func docxParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		parts     []string
		paragraph strings.Builder
		inText    bool
		seen      int
	)
	for seen < maxDocxParagraphs {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "parsing document.xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				seen++
				if text := strings.TrimSpace(paragraph.String()); text != "" {
					parts = append(parts, text)
				}
				paragraph.Reset()
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}
