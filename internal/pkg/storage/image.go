package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor handles downscaling of uploaded venue photos and logos.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Fit re-encodes the source image as JPEG fitted inside the maxWidth x maxHeight
// bounding box, preserving aspect ratio.
func (p *ImageProcessor) Fit(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

// Thumbnail creates a 200x200 bounded JPEG thumbnail of the source image.
func (p *ImageProcessor) Thumbnail(content io.Reader) (io.Reader, error) {
	return p.Fit(content, 200, 200)
}
