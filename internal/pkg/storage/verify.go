package storage

import (
	"os"
	"path"
	"path/filepath"
	"sort"
)

// SetAnomaly reports a (productCode, stem) whose variant set is incomplete:
// some expected files exist but not all of them. This is the footprint of an
// ingestion that failed partway. Anomalies are reported, never repaired.
type SetAnomaly struct {
	ProductCode string
	Stem        string
	Present     []string
	Missing     []string
}

// VerifyVariantSets scans the image tree for partial variant sets. Every
// stem found in a product root directory is expected to have the complete
// companion set across all size classes and both formats.
func (l *Layout) VerifyVariantSets() ([]SetAnomaly, error) {
	imagesRoot := filepath.Join(l.root, ImagesDir)
	entries, err := os.ReadDir(imagesRoot)
	if err != nil {
		return nil, err
	}

	var anomalies []SetAnomaly
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == path.Base(CarouselDir) {
			continue
		}
		productCode := entry.Name()

		stems, err := l.productStems(productCode)
		if err != nil {
			return nil, err
		}

		for _, stem := range stems {
			var present, missing []string
			for _, ref := range l.VariantRefs(productCode, stem) {
				if l.Stat(ref).Exists {
					present = append(present, ref)
				} else {
					missing = append(missing, ref)
				}
			}
			if len(missing) > 0 {
				anomalies = append(anomalies, SetAnomaly{
					ProductCode: productCode,
					Stem:        stem,
					Present:     present,
					Missing:     missing,
				})
			}
		}
	}
	return anomalies, nil
}

// productStems collects the distinct stems present anywhere in a product's
// tree, including size-class subdirectories, so an original lost mid-batch
// still surfaces its orphaned sized files.
func (l *Layout) productStems(productCode string) ([]string, error) {
	productDir := filepath.Join(l.root, ImagesDir, productCode)
	seen := map[string]bool{}

	err := filepath.WalkDir(productDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".jpg" && ext != ".webp" {
			return nil
		}
		seen[d.Name()[:len(d.Name())-len(ext)]] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	stems := make([]string, 0, len(seen))
	for stem := range seen {
		stems = append(stems, stem)
	}
	sort.Strings(stems)
	return stems, nil
}
