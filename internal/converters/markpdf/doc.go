// Package markpdf renders Markdown and HTML payloads to PDF. The
// layout is intentionally simple: headings, paragraphs, bullet lines,
// and clickable links; it does not attempt full Markdown or CSS layout.
package markpdf
