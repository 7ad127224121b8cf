package mcp

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fileforge/convertd/internal/core/domain"
)

// FileInput is the input schema for the fixed-pair conversion tools.
type FileInput struct {
	InputFile         string `json:"input_file,omitempty" jsonschema:"path or URL of the file to convert"`
	FileContentBase64 string `json:"file_content_base64,omitempty" jsonschema:"base64-encoded file content, as an alternative to input_file"`
}

// ImageInput is the input schema for the convert_image tool.
type ImageInput struct {
	InputFile         string `json:"input_file,omitempty" jsonschema:"path or URL of the image to convert"`
	FileContentBase64 string `json:"file_content_base64,omitempty" jsonschema:"base64-encoded image content, as an alternative to input_file"`
	InputFormat       string `json:"input_format,omitempty" jsonschema:"source image format; required with file_content_base64, otherwise inferred from the file name"`
	OutputFormat      string `json:"output_format" jsonschema:"target image format (jpg, jpeg, png, gif, bmp, tiff)"`
}

// ConvertFileInput is the input schema for the convert_file tool.
type ConvertFileInput struct {
	InputFile         string `json:"input_file,omitempty" jsonschema:"path or URL of the file to convert"`
	FileContentBase64 string `json:"file_content_base64,omitempty" jsonschema:"base64-encoded file content, as an alternative to input_file"`
	InputFormat       string `json:"input_format,omitempty" jsonschema:"source format; required with file_content_base64, otherwise inferred from the file extension"`
	OutputFormat      string `json:"output_format" jsonschema:"target format"`
}

// ConvertContentInput is the input schema for the convert_content tool.
type ConvertContentInput struct {
	Content      string `json:"content" jsonschema:"the document content to convert; JSON-wrapped payloads are unwrapped automatically"`
	InputFormat  string `json:"input_format,omitempty" jsonschema:"source format of the content (default md)"`
	OutputFormat string `json:"output_format,omitempty" jsonschema:"target format (default pdf)"`
}

// ConvertOutput is the output schema shared by all conversion tools.
type ConvertOutput struct {
	Success     bool   `json:"success"`
	OutputFile  string `json:"output_file,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "docx2pdf",
		Description: "Convert a Word document (.docx) to PDF",
	}, s.handleDocxToPDF)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pdf2docx",
		Description: "Convert a PDF document to Word (.docx)",
	}, s.handlePDFToDocx)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_image",
		Description: "Convert an image between formats (jpg, jpeg, png, webp, gif, bmp, tiff)",
	}, s.handleConvertImage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "excel2csv",
		Description: "Convert an Excel workbook (.xlsx, .xls) to CSV",
	}, s.handleExcelToCSV)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "html2pdf",
		Description: "Convert an HTML or Markdown file to PDF",
	}, s.handleHTMLToPDF)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "markdown2pdf",
		Description: "Convert a Markdown file to PDF",
	}, s.handleMarkdownToPDF)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_file",
		Description: "Convert a file between any supported format pair",
	}, s.handleConvertFile)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_content",
		Description: "Convert document content supplied directly as text",
	}, s.handleConvertContent)
}

func (s *Server) handleDocxToPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}
	return nil, s.convert(ctx, domain.FormatDOCX, domain.FormatPDF, src), nil
}

func (s *Server) handlePDFToDocx(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}
	return nil, s.convert(ctx, domain.FormatPDF, domain.FormatDOCX, src), nil
}

func (s *Server) handleConvertImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImageInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}
	sourceFormat := domain.NormalizeFormat(input.InputFormat)
	if sourceFormat == "" {
		sourceFormat = formatOf(src)
	}
	if !domain.IsImageFormat(sourceFormat) {
		return nil, failure("cannot determine image format; pass input_format"), nil
	}
	return nil, s.convert(ctx, sourceFormat, input.OutputFormat, src), nil
}

func (s *Server) handleExcelToCSV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}
	sourceFormat := formatOf(src)
	if sourceFormat != domain.FormatXLS {
		sourceFormat = domain.FormatXLSX
	}
	return nil, s.convert(ctx, sourceFormat, domain.FormatCSV, src), nil
}

func (s *Server) handleHTMLToPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}

	// Markdown files are accepted here as a convenience; callers often
	// reach for html2pdf with whatever markup they have.
	sourceFormat := domain.FormatHTML
	switch formatOf(src) {
	case domain.FormatMD, domain.FormatMarkdown:
		sourceFormat = domain.FormatMarkdown
	}
	return nil, s.convert(ctx, sourceFormat, domain.FormatPDF, src), nil
}

func (s *Server) handleMarkdownToPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}
	return nil, s.convert(ctx, domain.FormatMarkdown, domain.FormatPDF, src), nil
}

func (s *Server) handleConvertFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertFileInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	src, out, ok := s.resolveInput(input.InputFile, input.FileContentBase64)
	if !ok {
		return nil, out, nil
	}

	sourceFormat := input.InputFormat
	if sourceFormat == "" {
		sourceFormat = formatOf(src)
	}
	if sourceFormat == "" {
		return nil, failure("cannot determine source format; pass input_format"), nil
	}
	return nil, s.convert(ctx, sourceFormat, input.OutputFormat, src), nil
}

func (s *Server) handleConvertContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertContentInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	sourceFormat := input.InputFormat
	if sourceFormat == "" {
		sourceFormat = domain.FormatMD
	}
	targetFormat := input.OutputFormat
	if targetFormat == "" {
		targetFormat = domain.FormatPDF
	}

	src := domain.InputSource{Kind: domain.InputRawText, Value: input.Content}
	return nil, s.convert(ctx, sourceFormat, targetFormat, src), nil
}

// convert runs one request through the conversion service and maps the
// outcome onto the tool output shape.
func (s *Server) convert(ctx context.Context, sourceFormat, targetFormat string, src domain.InputSource) ConvertOutput {
	req := domain.NewRequest(sourceFormat, targetFormat, src)
	outcome := s.ports.Convert.Convert(ctx, req)
	if !outcome.Success {
		return failure(outcome.Error)
	}
	return ConvertOutput{
		Success:     true,
		OutputFile:  outcome.ArtifactPath,
		DownloadURL: outcome.ArtifactURL,
	}
}

// resolveInput picks between the path-or-URL input and the inline
// base64 input, which are mutually exclusive. The returned bool is
// false when the call is rejected and out carries the failure.
func (s *Server) resolveInput(rawPath, contentBase64 string) (src domain.InputSource, out ConvertOutput, ok bool) {
	rawPath = strings.TrimSpace(rawPath)
	contentBase64 = strings.TrimSpace(contentBase64)
	if !domain.ExactlyOneInput(rawPath, contentBase64) {
		return src, failure("provide exactly one of input_file and file_content_base64"), false
	}
	if contentBase64 != "" {
		return domain.InputSource{Kind: domain.InputInlineBytes, Value: contentBase64}, out, true
	}
	return s.resolveSource(rawPath)
}

// resolveSource classifies the raw input as a URL or a local file and
// resolves local files through the path resolver.
func (s *Server) resolveSource(raw string) (src domain.InputSource, out ConvertOutput, ok bool) {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return domain.InputSource{Kind: domain.InputRemoteURL, Value: raw}, out, true
	}

	path := raw
	if s.ports.Resolver != nil {
		resolved, err := s.ports.Resolver.Resolve(raw)
		if err != nil {
			return src, failure(err.Error()), false
		}
		path = resolved
	}
	return domain.InputSource{Kind: domain.InputLocalPath, Value: path}, out, true
}

// formatOf infers a format from the input source: the URL path
// extension with the query stripped for remote inputs, the file
// extension for local paths, nothing for inline bytes.
func formatOf(src domain.InputSource) string {
	switch src.Kind {
	case domain.InputRemoteURL:
		u, err := url.Parse(src.Value)
		if err != nil {
			return ""
		}
		return domain.NormalizeFormat(path.Ext(u.Path))
	case domain.InputLocalPath:
		return domain.NormalizeFormat(filepath.Ext(src.Value))
	default:
		return ""
	}
}

func failure(msg string) ConvertOutput {
	return ConvertOutput{Success: false, Error: msg}
}
