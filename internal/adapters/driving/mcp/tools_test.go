package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileforge/convertd/internal/core/domain"
)

func newTestServer(t *testing.T, svc *mockConvertService, res PathResolver) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Convert: svc, Resolver: res})
	require.NoError(t, err)
	return server
}

func TestServer_handleDocxToPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("maps success outcome", func(t *testing.T) {
		svc := &mockConvertService{
			outcome: domain.Succeeded("/out/output_1.pdf", "http://localhost:8000/files/output_1.pdf"),
		}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{InputFile: "report.docx"})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, "/out/output_1.pdf", output.OutputFile)
		assert.Equal(t, "http://localhost:8000/files/output_1.pdf", output.DownloadURL)
		assert.Empty(t, output.Error)
		assert.Equal(t, domain.FormatDOCX, svc.gotReq.SourceFormat)
		assert.Equal(t, domain.FormatPDF, svc.gotReq.TargetFormat)
		assert.Equal(t, domain.InputLocalPath, svc.gotReq.Input.Kind)
	})

	t.Run("maps failure outcome", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Failedf("conversion blew up")}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{InputFile: "report.docx"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Equal(t, "conversion blew up", output.Error)
		assert.Empty(t, output.OutputFile)
	})

	t.Run("resolver failure short-circuits", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{err: errResolve})

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{InputFile: "report.docx"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "not found")
		assert.False(t, svc.called, "service must not run without an input")
	})

	t.Run("empty input rejected", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.False(t, svc.called)
	})

	t.Run("base64 content becomes inline input", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		res := &mockResolver{}
		server := newTestServer(t, svc, res)

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{FileContentBase64: "UEsDBA=="})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, domain.InputInlineBytes, svc.gotReq.Input.Kind)
		assert.Equal(t, "UEsDBA==", svc.gotReq.Input.Value)
		assert.Empty(t, res.gotPath, "resolver must not see inline content")
	})

	t.Run("both inputs rejected", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleDocxToPDF(ctx, nil, FileInput{
			InputFile:         "report.docx",
			FileContentBase64: "UEsDBA==",
		})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "exactly one")
		assert.False(t, svc.called)
	})
}

func TestServer_resolveSource(t *testing.T) {
	t.Run("http url passed through as remote", func(t *testing.T) {
		res := &mockResolver{}
		server := newTestServer(t, &mockConvertService{}, res)

		src, _, ok := server.resolveSource("https://example.com/doc.docx?sig=abc")
		require.True(t, ok)
		assert.Equal(t, domain.InputRemoteURL, src.Kind)
		assert.Equal(t, "https://example.com/doc.docx?sig=abc", src.Value)
		assert.Empty(t, res.gotPath, "resolver must not see URLs")
	})

	t.Run("local path goes through resolver", func(t *testing.T) {
		res := &mockResolver{resolved: "/tmp/report.docx"}
		server := newTestServer(t, &mockConvertService{}, res)

		src, _, ok := server.resolveSource("report.docx")
		require.True(t, ok)
		assert.Equal(t, domain.InputLocalPath, src.Kind)
		assert.Equal(t, "/tmp/report.docx", src.Value)
	})

	t.Run("nil resolver passes path unchanged", func(t *testing.T) {
		server := newTestServer(t, &mockConvertService{}, nil)

		src, _, ok := server.resolveSource("/abs/report.docx")
		require.True(t, ok)
		assert.Equal(t, "/abs/report.docx", src.Value)
	})
}

func TestServer_handleConvertImage(t *testing.T) {
	ctx := context.Background()

	t.Run("source format from extension", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.jpg", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/photo.PNG"})

		_, output, err := server.handleConvertImage(ctx, nil, ImageInput{
			InputFile:    "photo.png",
			OutputFormat: "jpg",
		})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, "png", svc.gotReq.SourceFormat)
		assert.Equal(t, "jpg", svc.gotReq.TargetFormat)
	})

	t.Run("non-image extension rejected", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertImage(ctx, nil, ImageInput{
			InputFile:    "report.docx",
			OutputFormat: "png",
		})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "image format")
		assert.False(t, svc.called)
	})

	t.Run("url with query string keeps path extension", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.jpg", "")}
		res := &mockResolver{}
		server := newTestServer(t, svc, res)

		_, output, err := server.handleConvertImage(ctx, nil, ImageInput{
			InputFile:    "https://example.com/pic.png?token=abc",
			OutputFormat: "jpg",
		})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, "png", svc.gotReq.SourceFormat)
		assert.Equal(t, domain.InputRemoteURL, svc.gotReq.Input.Kind)
		assert.Empty(t, res.gotPath, "resolver must not see URLs")
	})

	t.Run("base64 requires input_format", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertImage(ctx, nil, ImageInput{
			FileContentBase64: "aW1n",
			OutputFormat:      "png",
		})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "input_format")
		assert.False(t, svc.called)
	})

	t.Run("base64 with input_format", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.png", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertImage(ctx, nil, ImageInput{
			FileContentBase64: "aW1n",
			InputFormat:       "JPG",
			OutputFormat:      "png",
		})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, "jpg", svc.gotReq.SourceFormat)
		assert.Equal(t, domain.InputInlineBytes, svc.gotReq.Input.Kind)
	})
}

func TestServer_handleExcelToCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("xls extension kept", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.csv", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/book.xls"})

		_, output, err := server.handleExcelToCSV(ctx, nil, FileInput{InputFile: "book.xls"})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, domain.FormatXLS, svc.gotReq.SourceFormat)
		assert.Equal(t, domain.FormatCSV, svc.gotReq.TargetFormat)
	})

	t.Run("query string does not break inference", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.csv", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, _, err := server.handleExcelToCSV(ctx, nil, FileInput{
			InputFile: "https://example.com/book.xls?sig=abc",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatXLS, svc.gotReq.SourceFormat)
	})

	t.Run("base64 content defaults to xlsx", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.csv", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, _, err := server.handleExcelToCSV(ctx, nil, FileInput{FileContentBase64: "UEsDBA=="})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatXLSX, svc.gotReq.SourceFormat)
		assert.Equal(t, domain.InputInlineBytes, svc.gotReq.Input.Kind)
	})
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "png", formatOf(domain.InputSource{
		Kind:  domain.InputRemoteURL,
		Value: "https://example.com/a/pic.PNG?token=abc&x=1",
	}))
	assert.Equal(t, "", formatOf(domain.InputSource{
		Kind:  domain.InputRemoteURL,
		Value: "https://example.com/download?id=7",
	}))
	assert.Equal(t, "docx", formatOf(domain.InputSource{
		Kind:  domain.InputLocalPath,
		Value: "/tmp/report.DOCX",
	}))
	assert.Equal(t, "", formatOf(domain.InputSource{
		Kind:  domain.InputInlineBytes,
		Value: "UEsDBA==",
	}))
}

func TestServer_handleHTMLToPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("html file", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/page.html"})

		_, _, err := server.handleHTMLToPDF(ctx, nil, FileInput{InputFile: "page.html"})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatHTML, svc.gotReq.SourceFormat)
	})

	t.Run("markdown file routed to markdown source", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/notes.md"})

		_, _, err := server.handleHTMLToPDF(ctx, nil, FileInput{InputFile: "notes.md"})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatMarkdown, svc.gotReq.SourceFormat)
	})
}

func TestServer_handleConvertFile(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit formats win", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.csv", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/data.bin"})

		_, _, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			InputFile:    "data.bin",
			InputFormat:  "xlsx",
			OutputFormat: "csv",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatXLSX, svc.gotReq.SourceFormat)
	})

	t.Run("source format inferred from extension", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/report.docx"})

		_, _, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			InputFile:    "report.docx",
			OutputFormat: "pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatDOCX, svc.gotReq.SourceFormat)
	})

	t.Run("url query string stripped before inference", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.jpg", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, _, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			InputFile:    "https://example.com/pic.png?X-Amz-Signature=abc&x=1",
			OutputFormat: "jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, "png", svc.gotReq.SourceFormat)
	})

	t.Run("base64 with explicit format", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.csv", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, _, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			FileContentBase64: "UEsDBA==",
			InputFormat:       "xlsx",
			OutputFormat:      "csv",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.InputInlineBytes, svc.gotReq.Input.Kind)
		assert.Equal(t, domain.FormatXLSX, svc.gotReq.SourceFormat)
	})

	t.Run("base64 without format fails", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			FileContentBase64: "UEsDBA==",
			OutputFormat:      "csv",
		})
		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "input_format")
		assert.False(t, svc.called)
	})

	t.Run("no extension and no format fails", func(t *testing.T) {
		svc := &mockConvertService{}
		server := newTestServer(t, svc, &mockResolver{resolved: "/tmp/report"})

		_, output, err := server.handleConvertFile(ctx, nil, ConvertFileInput{
			InputFile:    "report",
			OutputFormat: "pdf",
		})
		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "source format")
	})
}

func TestServer_handleConvertContent(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to markdown to pdf", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertContent(ctx, nil, ConvertContentInput{
			Content: "# Title",
		})
		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, domain.FormatMD, svc.gotReq.SourceFormat)
		assert.Equal(t, domain.FormatPDF, svc.gotReq.TargetFormat)
		assert.Equal(t, domain.InputRawText, svc.gotReq.Input.Kind)
		assert.Equal(t, "# Title", svc.gotReq.Input.Value)
	})

	t.Run("empty content still forwarded", func(t *testing.T) {
		svc := &mockConvertService{outcome: domain.Succeeded("/out/output_1.pdf", "")}
		server := newTestServer(t, svc, &mockResolver{})

		_, output, err := server.handleConvertContent(ctx, nil, ConvertContentInput{})
		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.True(t, svc.called)
	})
}
