package imageprocessor

import "fmt"

// Format identifies an output encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".jpg"
}

// Size class names. "original" keeps the native resolution; the others are
// square bounding boxes.
const (
	SizeOriginal  = "original"
	SizeThumbnail = "thumbnail"
	SizeSmall     = "small"
	SizeMedium    = "medium"
	SizeLarge     = "large"
)

// Encoding quality policy. These are deliberately constants, not per-call
// options, so output sizes stay predictable.
const (
	JPEGQualitySized    = 85
	JPEGQualityOriginal = 90
	JPEGQualityCarousel = 90
	WebPQuality         = 80

	// Highest-effort libwebp compression. Encoding is a one-time batch cost;
	// the artifacts are served forever.
	WebPMethod = 6
)

// Carousel slides are always a single fixed-size JPEG.
const (
	CarouselWidth  = 1920
	CarouselHeight = 1080
)

// VariantSpec describes one output to produce from a canonical image.
// Width/Height of zero mean "keep the native resolution".
type VariantSpec struct {
	SizeClass string
	Width     int
	Height    int
	Format    Format
	Quality   int
}

// Bounded reports whether the spec has a target box.
func (s VariantSpec) Bounded() bool {
	return s.Width > 0 && s.Height > 0
}

func (s VariantSpec) String() string {
	return fmt.Sprintf("%s/%s", s.SizeClass, s.Format)
}

// SizeClassBoxes maps each bounded size class to its square box edge, in
// declaration order. The order is part of the storage contract and must not
// change.
var SizeClassBoxes = []struct {
	Name string
	Edge int
}{
	{SizeThumbnail, 150},
	{SizeSmall, 300},
	{SizeMedium, 500},
	{SizeLarge, 800},
}

// SizeClasses returns the bounded size class names in declaration order.
func SizeClasses() []string {
	names := make([]string, 0, len(SizeClassBoxes))
	for _, sc := range SizeClassBoxes {
		names = append(names, sc.Name)
	}
	return names
}

// ProductVariants returns the full variant catalog for product images: the
// unboxed original plus every size class, each in JPEG and WebP.
func ProductVariants() []VariantSpec {
	specs := []VariantSpec{
		{SizeClass: SizeOriginal, Format: FormatJPEG, Quality: JPEGQualityOriginal},
		{SizeClass: SizeOriginal, Format: FormatWebP, Quality: WebPQuality},
	}
	for _, sc := range SizeClassBoxes {
		specs = append(specs,
			VariantSpec{SizeClass: sc.Name, Width: sc.Edge, Height: sc.Edge, Format: FormatJPEG, Quality: JPEGQualitySized},
			VariantSpec{SizeClass: sc.Name, Width: sc.Edge, Height: sc.Edge, Format: FormatWebP, Quality: WebPQuality},
		)
	}
	return specs
}

// CarouselVariant returns the single spec used for carousel ingestion.
func CarouselVariant() VariantSpec {
	return VariantSpec{
		SizeClass: SizeOriginal,
		Width:     CarouselWidth,
		Height:    CarouselHeight,
		Format:    FormatJPEG,
		Quality:   JPEGQualityCarousel,
	}
}
