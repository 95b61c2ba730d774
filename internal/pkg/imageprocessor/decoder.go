package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	// Registers the HEIC decoder so camera uploads (iPhone HEIC) decode
	// through the standard image.Decode path.
	_ "github.com/gen2brain/heic"
)

// Decode turns raw source bytes into a canonical bitmap: EXIF orientation is
// applied during decoding, and transparency or palette color modes are
// flattened onto an opaque white background. The result is always an opaque
// 8-bit RGB(A) bitmap whose stored pixel order matches display orientation.
func Decode(data []byte, filename string) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}
	return flatten(img), nil
}

// flatten composites the image over a white canvas. This drops alpha and
// palette modes in one step; fully opaque sources come through unchanged
// pixel-wise.
func flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)
	return canvas
}
