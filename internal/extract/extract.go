// Package extract turns uploaded resume files into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	docxBody = "word/document.xml"
)

// ErrUnsupported is returned for payloads that are neither PDF nor DOCX.
var ErrUnsupported = errors.New("unsupported file type")

// ErrOCR marks a failed call to the OCR backend, as opposed to an unreadable file.
var ErrOCR = errors.New("ocr failed")

// OCR reads text from page images, for scanned PDFs without a text layer.
type OCR interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (string, error)
}

var pdfTextFn = pdfText

type kind int

const (
	kindUnknown kind = iota
	kindPDF
	kindDOCX
)

// Text extracts plain text from an uploaded PDF or DOCX payload. The content is
// sniffed first; the declared type and file extension only break ties.
func Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch detect(data, mimeType, fileName) {
	case kindPDF:
		return pdfTextFn(data)
	case kindDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, declared(mimeType, fileName))
	}
}

// TextWithOCR behaves like Text and hands PDFs that yield no text to ocr.
// A nil ocr makes it identical to Text.
func TextWithOCR(ctx context.Context, ocr OCR, data []byte, mimeType, fileName string) (string, error) {
	text, err := Text(ctx, data, mimeType, fileName)
	if err != nil || text != "" || ocr == nil || detect(data, mimeType, fileName) != kindPDF {
		return text, err
	}
	recognized, err := ocr.Recognize(ctx, data, mimePDF)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOCR, err)
	}
	return recognized, nil
}

func detect(data []byte, mimeType, fileName string) kind {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return kindPDF
	}
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if docxEntry(zr) != nil {
			return kindDOCX
		}
		return kindUnknown
	}
	// Not a zip; a truncated PDF without its header still deserves a parse error.
	if declared(mimeType, fileName) == mimePDF {
		return kindPDF
	}
	return kindUnknown
}

func declared(mimeType, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	}
	if clean == "" {
		return "unknown"
	}
	return clean
}

func pdfText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func docxEntry(zr *zip.Reader) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == docxBody {
			return f
		}
	}
	return nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	entry := docxEntry(zr)
	if entry == nil {
		return "", fmt.Errorf("open docx: %s not found", docxBody)
	}
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer rc.Close()
	return paragraphs(rc)
}

// paragraphs keeps run text and ends a line at every paragraph, break or tab stop.
func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var out strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}
