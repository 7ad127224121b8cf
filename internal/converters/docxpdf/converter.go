// Package docxpdf converts DOCX documents to PDF. The document text is
// pulled from the OOXML body paragraph by paragraph and laid out as a
// plain-text PDF; styling, tables, and embedded media are not carried
// over.
package docxpdf

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Capability = (*Converter)(nil)

// Converter is the docx-to-pdf capability.
type Converter struct{}

// New creates the docx-to-pdf capability.
func New() *Converter {
	return &Converter{}
}

// Name identifies the capability.
func (c *Converter) Name() string { return "docx2pdf" }

// Staging declares path-based input.
func (c *Converter) Staging() driven.StagingMode { return driven.StagePath }

// Convert reads the DOCX at in.Path and writes a PDF at outputPath.
func (c *Converter) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	paragraphs, err := readParagraphs(in.Path)
	if err != nil {
		return fmt.Errorf("reading docx: %w", err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	doc.AddPage()
	for _, p := range paragraphs {
		if p == "" {
			doc.Ln(5)
			continue
		}
		doc.MultiCell(0, 5, p, "", "L", false)
		doc.Ln(2)
	}

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []struct {
			Runs []struct {
				Text []struct {
					Content string `xml:",chardata"`
				} `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

// readParagraphs extracts the paragraph texts from word/document.xml.
func readParagraphs(path string) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return parseParagraphs(content)
	}
	return nil, fmt.Errorf("%s has no word/document.xml", path)
}

func parseParagraphs(content []byte) ([]string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var text string
		for _, r := range p.Runs {
			for _, t := range r.Text {
				text += t.Content
			}
		}
		paragraphs = append(paragraphs, text)
	}
	return paragraphs, nil
}
