// Package pdfdocx converts PDF documents to DOCX. Text is extracted
// page by page and written as one paragraph per line into a minimal
// OOXML package; positioning, fonts, and images are not reconstructed.
package pdfdocx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Capability = (*Converter)(nil)

// Converter is the pdf-to-docx capability.
type Converter struct{}

// New creates the pdf-to-docx capability.
func New() *Converter {
	return &Converter{}
}

// Name identifies the capability.
func (c *Converter) Name() string { return "pdf2docx" }

// Staging declares path-based input.
func (c *Converter) Staging() driven.StagingMode { return driven.StagePath }

// Convert extracts the text of the PDF at in.Path and writes a DOCX at
// outputPath.
func (c *Converter) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	text, err := extractText(in.Path)
	if err != nil {
		return fmt.Errorf("extracting pdf text: %w", err)
	}
	if err := writeDocx(outputPath, strings.Split(text, "\n")); err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}
	return nil
}

// extractText pulls plain text from every page. The pdf library can
// panic on malformed files, so page access is guarded.
func extractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// Static OOXML package parts for a minimal but valid DOCX.
const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentFooter = `</w:body></w:document>`
)

// writeDocx assembles the OOXML zip with one paragraph per line.
func writeDocx(path string, lines []string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	archive := zip.NewWriter(out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(lines)},
	}
	for _, part := range parts {
		w, err := archive.Create(part.name)
		if err != nil {
			out.Close()
			return err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			out.Close()
			return err
		}
	}

	if err := archive.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func documentXML(lines []string) string {
	var b strings.Builder
	b.WriteString(documentHeader)
	for _, line := range lines {
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		xml.EscapeText(&b, []byte(line)) //nolint:errcheck
		b.WriteString(`</w:t></w:r></w:p>`)
	}
	b.WriteString(documentFooter)
	return b.String()
}
