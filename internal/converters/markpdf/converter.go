package markpdf

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Ensure the capabilities implement the interface.
var (
	_ driven.Capability = (*Markdown)(nil)
	_ driven.Capability = (*HTML)(nil)
)

// Markdown renders a Markdown text payload to PDF.
type Markdown struct{}

// NewMarkdown creates the markdown-to-PDF capability.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Name identifies the capability.
func (c *Markdown) Name() string { return "markdown2pdf" }

// Staging declares text-based input.
func (c *Markdown) Staging() driven.StagingMode { return driven.StageText }

// Convert renders the payload and writes the PDF at outputPath.
func (c *Markdown) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	if err := render(in.Text, outputPath); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}

// HTML renders an HTML text payload to PDF by stripping markup down to
// readable text first.
type HTML struct{}

// NewHTML creates the html-to-PDF capability.
func NewHTML() *HTML {
	return &HTML{}
}

// Name identifies the capability.
func (c *HTML) Name() string { return "html2pdf" }

// Staging declares text-based input.
func (c *HTML) Staging() driven.StagingMode { return driven.StageText }

// Convert strips the markup and writes the PDF at outputPath.
func (c *HTML) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	if err := render(StripTags(in.Text), outputPath); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// render lays the text out line by line: heading markers set a larger
// bold font, bullet markers get an indent, inline [text](url) links
// become clickable, everything else flows as paragraphs.
func render(text, outputPath string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	doc.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			doc.Ln(5)
		case strings.HasPrefix(line, "#"):
			renderHeading(doc, line)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			doc.SetX(doc.GetX() + 4)
			renderInline(doc, "• "+line[2:])
			doc.Ln(6)
		default:
			renderInline(doc, line)
			doc.Ln(6)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return doc.OutputFileAndClose(outputPath)
}

func renderHeading(doc *gofpdf.Fpdf, line string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	title := strings.TrimSpace(line[level:])
	if title == "" {
		return
	}
	size := 16.0 - 2.0*float64(level-1)
	if size < 12 {
		size = 12
	}
	doc.SetFont("Helvetica", "B", size)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
}

// renderInline writes a line, turning markdown links into clickable PDF
// links and leaving intra-document anchors as plain text.
func renderInline(doc *gofpdf.Fpdf, line string) {
	matches := linkPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		doc.MultiCell(0, 5, line, "", "L", false)
		return
	}
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			doc.Write(5, line[pos:m[0]])
		}
		label := line[m[2]:m[3]]
		target := line[m[4]:m[5]]
		if strings.HasPrefix(target, "#") {
			doc.Write(5, label)
		} else {
			doc.WriteLinkString(5, label, target)
		}
		pos = m[1]
	}
	if pos < len(line) {
		doc.Write(5, line[pos:])
	}
}

// Patterns for reducing HTML to readable text.
var (
	droppedBlocks = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBreaks   = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>|<(br|hr)\s*/?>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	runsOfSpace   = regexp.MustCompile(`[ \t]+`)
)

// StripTags reduces HTML to plain text: non-content blocks are dropped,
// block boundaries become line breaks, entities are decoded.
func StripTags(content string) string {
	content = droppedBlocks.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = blockBreaks.ReplaceAllString(content, "\n")
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = runsOfSpace.ReplaceAllString(content, " ")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
