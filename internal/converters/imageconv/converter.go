// Package imageconv converts between raster image formats. Decoding is
// format-sniffing, so the capability serves the whole image family and
// the requested target format is passed through by the dispatch table.
package imageconv

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode only

	"github.com/fileforge/convertd/internal/core/domain"
	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Capability = (*Converter)(nil)

// Converter is the image format capability.
type Converter struct{}

// New creates the image conversion capability.
func New() *Converter {
	return &Converter{}
}

// Name identifies the capability.
func (c *Converter) Name() string { return "convert_image" }

// Staging declares path-based input.
func (c *Converter) Staging() driven.StagingMode { return driven.StagePath }

// Convert decodes the image at in.Path and re-encodes it at outputPath
// in in.TargetFormat. WebP is decode-only: valid as a source, rejected
// as a target.
func (c *Converter) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	target := domain.NormalizeFormat(in.TargetFormat)
	if !domain.IsImageFormat(target) {
		return fmt.Errorf("unsupported output format: %s", in.TargetFormat)
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	img, sourceFormat, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := encode(out, img, target); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s as %s: %w", sourceFormat, target, err)
	}
	return out.Close()
}

func encode(out *os.File, img image.Image, target string) error {
	switch target {
	case "png":
		return png.Encode(out, img)
	case "jpg", "jpeg":
		// JPEG has no alpha channel: flatten onto a white background so
		// transparent regions do not come out black.
		return jpeg.Encode(out, flatten(img), &jpeg.Options{Quality: 90})
	case "gif":
		return gif.Encode(out, img, nil)
	case "bmp":
		return bmp.Encode(out, img)
	case "tiff":
		return tiff.Encode(out, img, nil)
	default: // webp
		return fmt.Errorf("%s encoding is not supported", target)
	}
}

func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
