package domain

import "strings"

// Well-known format names. Formats are lower-case file-extension style
// strings; callers may pass any case.
const (
	FormatDOCX     = "docx"
	FormatPDF      = "pdf"
	FormatMarkdown = "markdown"
	FormatMD       = "md"
	FormatHTML     = "html"
	FormatXLSX     = "xlsx"
	FormatXLS      = "xls"
	FormatCSV      = "csv"
)

// imageFormats is the fixed image-family set. Any request whose source
// format is in this set is routed to the image capability regardless of
// an exact pair match.
var imageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// NormalizeFormat lower-cases a format name and strips a leading dot so
// ".PDF", "pdf" and "PDF" all refer to the same format.
func NormalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// IsImageFormat reports whether the format belongs to the image family.
func IsImageFormat(format string) bool {
	return imageFormats[NormalizeFormat(format)]
}

// ImageFormats returns the recognised image formats in stable order.
func ImageFormats() []string {
	return []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tiff"}
}
