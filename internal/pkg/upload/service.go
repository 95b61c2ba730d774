package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/glamcart/imagecore/internal/pkg/imageprocessor"
	"github.com/glamcart/imagecore/internal/pkg/storage"
)

// Image roles as stored by the catalog layer.
const (
	RoleMain    = "main"
	RoleGallery = "gallery"
)

// File is one source image handed over by the catalog layer: raw bytes plus
// the original filename for format hinting and stem derivation.
type File struct {
	Data     []byte
	Filename string
}

// SavedFile describes a flat file stored beneath a subfolder of the root.
type SavedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
}

// SavedImage describes one ingested product image. URL always points at the
// original JPEG; the sized variants are re-derived from the path convention.
type SavedImage struct {
	URL          string                      `json:"url"`
	Alt          string                      `json:"alt"`
	Role         string                      `json:"role"`
	Filename     string                      `json:"filename"`
	OriginalName string                      `json:"original_name"`
	Size         int64                       `json:"size"`
	Capture      *imageprocessor.CaptureInfo `json:"-"`
}

// Service is the ingestion surface exposed to the catalog layer. Both the
// interactive upload path and the batch importer route through it.
type Service struct {
	layout *storage.Layout
}

func NewService(layout *storage.Layout) *Service {
	return &Service{layout: layout}
}

// Layout exposes the storage layout for deletion and stat calls.
func (s *Service) Layout() *storage.Layout { return s.layout }

// SaveFiles stores files verbatim beneath the given subfolder with generated
// unique names. Used for ancillary single files such as QR codes.
func (s *Service) SaveFiles(files []File, subfolder string) ([]SavedFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if err := s.layout.EnsureDir(subfolder); err != nil {
		return nil, fmt.Errorf("creating destination directory %s: %w", subfolder, err)
	}

	saved := make([]SavedFile, 0, len(files))
	for _, file := range files {
		if file.Filename == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		name := uuid.New().String() + ext
		ref := s.layout.FlatRef(subfolder, name)

		if err := s.layout.WriteFile(ref, file.Data); err != nil {
			log.Errorf("[Upload] Failed to write %s: %v", ref, err)
			continue
		}

		saved = append(saved, SavedFile{
			Filename:     name,
			OriginalName: file.Filename,
			URL:          ref,
			Size:         int64(len(file.Data)),
		})
	}
	return saved, nil
}

// SaveProductImages ingests source images for a product through the full
// variant catalog. Per-file decode failures and per-variant encode failures
// are logged and skipped; the call returns every image that did succeed.
// Only base directory provisioning aborts the whole call.
func (s *Service) SaveProductImages(files []File, productCode string) ([]SavedImage, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if err := s.layout.EnsureProductDirs(productCode); err != nil {
		return nil, err
	}

	specs := imageprocessor.ProductVariants()
	saved := make([]SavedImage, 0, len(files))

	for i, file := range files {
		if file.Filename == "" {
			continue
		}

		if _, err := ValidateImageBySniff(file.Filename, head(file.Data)); err != nil {
			log.Warnf("[Upload] Rejected %s for product %s: %v", file.Filename, productCode, err)
			continue
		}

		img, err := imageprocessor.Decode(file.Data, file.Filename)
		if err != nil {
			var decodeErr *imageprocessor.DecodeError
			if errors.As(err, &decodeErr) {
				log.Warnf("[Upload] Skipping undecodable source %s: %v", file.Filename, err)
				continue
			}
			return saved, err
		}

		stem := UniqueStem(file.Filename)
		var originalSize int64

		for _, spec := range specs {
			artifact, err := imageprocessor.EncodeVariant(img, spec)
			if err != nil {
				log.Errorf("[Upload] Variant %s failed for %s: %v", spec, file.Filename, err)
				continue
			}

			ref := s.layout.VariantRef(productCode, stem, spec)
			if err := s.layout.WriteFile(ref, artifact); err != nil {
				log.Errorf("[Upload] Failed to write variant %s: %v", ref, err)
				continue
			}

			if spec.SizeClass == imageprocessor.SizeOriginal && spec.Format == imageprocessor.FormatJPEG {
				originalSize = int64(len(artifact))
			}
		}

		role := RoleGallery
		if len(saved) == 0 {
			role = RoleMain
		}

		saved = append(saved, SavedImage{
			URL:          s.layout.OriginalRef(productCode, stem, imageprocessor.FormatJPEG),
			Alt:          fmt.Sprintf("%s - Image %d", productCode, i+1),
			Role:         role,
			Filename:     stem + ".jpg",
			OriginalName: file.Filename,
			Size:         originalSize,
			Capture:      imageprocessor.ExtractCaptureInfo(file.Data),
		})
	}

	return saved, nil
}

// SaveCarouselImage ingests one carousel slide: a single fixed 1920x1080
// JPEG under a generated name, not tied to any product code.
func (s *Service) SaveCarouselImage(file File) (string, error) {
	if file.Filename == "" {
		return "", errors.New("no filename provided")
	}

	if _, err := ValidateImageBySniff(file.Filename, head(file.Data)); err != nil {
		return "", err
	}

	img, err := imageprocessor.Decode(file.Data, file.Filename)
	if err != nil {
		return "", err
	}

	artifact, err := imageprocessor.EncodeVariant(img, imageprocessor.CarouselVariant())
	if err != nil {
		return "", err
	}

	name := "carousel-" + uuid.New().String()
	ref := s.layout.CarouselRef(name)
	if err := s.layout.WriteFile(ref, artifact); err != nil {
		return "", fmt.Errorf("writing carousel image %s: %w", ref, err)
	}
	return ref, nil
}

// UniqueStem derives the collision-resistant base name shared by all
// variants of one source image: the sanitized original stem plus a short
// uniqueness token.
func UniqueStem(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = sanitizeStem(stem)
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return stem + "_" + token
}

func sanitizeStem(stem string) string {
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
