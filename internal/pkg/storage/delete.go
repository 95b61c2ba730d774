package storage

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/glamcart/imagecore/internal/pkg/imageprocessor"
)

// ParseProductRef extracts (productCode, stem) from a product-image-shaped
// reference such as images/A12/photo1_ab12cd34.jpg. The size-class segment
// is absent from stored references, which always point at the original.
func ParseProductRef(ref string) (productCode, stem string, ok bool) {
	if !strings.HasPrefix(ref, ImagesDir+"/") {
		return "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(ref, ImagesDir+"/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	filename := parts[1]
	return parts[0], strings.TrimSuffix(filename, path.Ext(filename)), true
}

// VariantRefs reconstructs the complete reference set for a (productCode,
// stem) pair: both originals plus every size class in both formats. This is
// the exact set ingestion produces, re-derived from the path convention.
func (l *Layout) VariantRefs(productCode, stem string) []string {
	refs := make([]string, 0, len(imageprocessor.ProductVariants()))
	for _, spec := range imageprocessor.ProductVariants() {
		refs = append(refs, l.VariantRef(productCode, stem, spec))
	}
	return refs
}

// Delete removes every file belonging to a stored reference. Product-image
// references expand to the full re-derived variant set; anything else is
// treated as a single flat file beneath the root. Absence of any individual
// file is not an error, so deletion is idempotent.
func (l *Layout) Delete(ref string) error {
	if ref == "" {
		return nil
	}

	if productCode, stem, ok := ParseProductRef(ref); ok {
		var firstErr error
		for _, variantRef := range l.VariantRefs(productCode, stem) {
			if err := os.Remove(l.Abs(variantRef)); err != nil && !os.IsNotExist(err) {
				log.Errorf("[Storage] Failed to remove %s: %v", variantRef, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		return firstErr
	}

	// Malformed refs (e.g. a trailing slash) can resolve to a directory
	// here. Only files are ever removed.
	if info, err := os.Stat(l.Abs(ref)); err == nil && info.IsDir() {
		log.Warnf("[Storage] Refusing to remove directory %s", ref)
		return nil
	}

	if err := os.Remove(l.Abs(ref)); err != nil && !os.IsNotExist(err) {
		log.Errorf("[Storage] Failed to remove %s: %v", ref, err)
		return err
	}
	return nil
}

// CleanupEmptyDirs walks the image tree bottom-up and removes directories
// left empty by deletions. The base directories themselves are kept.
func (l *Layout) CleanupEmptyDirs() error {
	imagesRoot := filepath.Join(l.root, ImagesDir)

	var dirs []string
	err := filepath.WalkDir(imagesRoot, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && p != imagesRoot {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest first, so emptied parents are removable in the same pass.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			log.Debugf("[Storage] Could not remove directory %s: %v", dir, err)
		}
	}
	return nil
}
