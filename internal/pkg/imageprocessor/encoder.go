package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Render applies the spec's geometry to the canonical image. Bounded specs
// scale down (never up) to fit the target box with Lanczos resampling; when
// the scaled result does not fill the box exactly, it is pasted centered on
// a white canvas of exactly the box dimensions. Unbounded specs return the
// image unchanged.
func Render(img *image.NRGBA, spec VariantSpec) *image.NRGBA {
	if !spec.Bounded() {
		return img
	}

	fitted := imaging.Fit(img, spec.Width, spec.Height, imaging.Lanczos)
	if fitted.Bounds().Dx() == spec.Width && fitted.Bounds().Dy() == spec.Height {
		return fitted
	}

	canvas := imaging.New(spec.Width, spec.Height, color.White)
	return imaging.PasteCenter(canvas, fitted)
}

// Encode writes the image in the spec's format with the spec's encoding
// parameters. JPEG output is encoded at the configured quality; WebP is
// always lossy.
func Encode(w io.Writer, img image.Image, spec VariantSpec) error {
	switch spec.Format {
	case FormatWebP:
		return encodeWebP(w, img, spec)
	default:
		if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(spec.Quality)); err != nil {
			return &EncodeError{Spec: spec, Err: err}
		}
		return nil
	}
}

// EncodeVariant renders and encodes one planned variant, returning the
// encoded bytes.
func EncodeVariant(img *image.NRGBA, spec VariantSpec) ([]byte, error) {
	rendered := Render(img, spec)

	var buf bytes.Buffer
	if err := Encode(&buf, rendered, spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(w io.Writer, img image.Image, spec VariantSpec) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(spec.Quality))
	if err != nil {
		return &EncodeError{Spec: spec, Err: err}
	}
	options.Method = WebPMethod

	if err := webp.Encode(w, img, options); err != nil {
		return &EncodeError{Spec: spec, Err: err}
	}
	return nil
}
