package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/glamcart/imagecore/internal/pkg/imageprocessor"
)

// Directory names beneath the storage root. References handed to the catalog
// layer are always relative to the root and use forward slashes.
const (
	ImagesDir   = "images"
	CarouselDir = "images/carousel"
	QRCodesDir  = "qr_codes"
)

// Layout derives every path this system reads or writes. The path functions
// are pure in (product code, stem, size class, format), which is what makes
// reference-based deletion possible without a manifest.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at the given static-assets directory and
// provisions the base directories. Failure here is fatal for any ingestion,
// since nothing downstream can succeed without the base tree.
func NewLayout(root string) (*Layout, error) {
	l := &Layout{root: root}
	for _, dir := range []string{ImagesDir, CarouselDir, QRCodesDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("creating base directory %s: %w", dir, err)
		}
	}
	return l, nil
}

// Root returns the absolute storage root.
func (l *Layout) Root() string { return l.root }

// Abs resolves a relative reference to an absolute path on disk.
func (l *Layout) Abs(ref string) string {
	return filepath.Join(l.root, filepath.FromSlash(ref))
}

// OriginalRef returns the reference for an unboxed original:
// images/{productCode}/{stem}{ext}.
func (l *Layout) OriginalRef(productCode, stem string, format imageprocessor.Format) string {
	return path.Join(ImagesDir, productCode, stem+format.Ext())
}

// SizedRef returns the reference for a bounded variant:
// images/{productCode}/{sizeClass}/{stem}{ext}.
func (l *Layout) SizedRef(productCode, sizeClass, stem string, format imageprocessor.Format) string {
	return path.Join(ImagesDir, productCode, sizeClass, stem+format.Ext())
}

// VariantRef dispatches on the spec's size class.
func (l *Layout) VariantRef(productCode, stem string, spec imageprocessor.VariantSpec) string {
	if spec.SizeClass == imageprocessor.SizeOriginal {
		return l.OriginalRef(productCode, stem, spec.Format)
	}
	return l.SizedRef(productCode, spec.SizeClass, stem, spec.Format)
}

// CarouselRef returns the reference for a carousel slide. Carousel images
// are not tied to a product code; the generated name replaces the stem
// entirely and the format is always JPEG.
func (l *Layout) CarouselRef(generatedName string) string {
	return path.Join(CarouselDir, generatedName+".jpg")
}

// FlatRef returns the reference for an ancillary single file stored directly
// beneath a subfolder of the root, e.g. qr_codes/{name}.png.
func (l *Layout) FlatRef(subfolder, filename string) string {
	return path.Join(subfolder, filename)
}

// EnsureProductDirs provisions the product directory and its size-class
// subdirectories. Creating an existing directory is a no-op.
func (l *Layout) EnsureProductDirs(productCode string) error {
	productDir := filepath.Join(l.root, ImagesDir, productCode)
	if err := os.MkdirAll(productDir, 0755); err != nil {
		return fmt.Errorf("creating product directory %s: %w", productCode, err)
	}
	for _, sizeClass := range imageprocessor.SizeClasses() {
		if err := os.MkdirAll(filepath.Join(productDir, sizeClass), 0755); err != nil {
			return fmt.Errorf("creating size directory %s/%s: %w", productCode, sizeClass, err)
		}
	}
	return nil
}

// EnsureDir provisions an arbitrary directory beneath the root.
func (l *Layout) EnsureDir(ref string) error {
	return os.MkdirAll(l.Abs(ref), 0755)
}

// WriteFile writes encoded bytes to the given reference. The containing
// directory must already exist; writes are always attributed to a specific
// reference, never anonymous.
func (l *Layout) WriteFile(ref string, data []byte) error {
	return os.WriteFile(l.Abs(ref), data, 0644)
}

// FileInfo describes a stored reference.
type FileInfo struct {
	Exists   bool
	Size     int64
	Modified time.Time
	Path     string
}

// Stat reports existence, size and modification time for a reference.
func (l *Layout) Stat(ref string) FileInfo {
	fi, err := os.Stat(l.Abs(ref))
	if err != nil {
		return FileInfo{Exists: false, Path: ref}
	}
	return FileInfo{
		Exists:   true,
		Size:     fi.Size(),
		Modified: fi.ModTime(),
		Path:     ref,
	}
}
