package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/glamcart/imagecore/internal/pkg/upload"
)

const DefaultWorkers = 3

// Product is one row from the bulk-import data. Only the code participates
// in path derivation; the name is carried through for reporting.
type Product struct {
	Code string
	Name string
}

// Failure records a product whose ingestion errored for a reason other than
// a missing source folder.
type Failure struct {
	Code   string
	Reason string
}

// BatchReport aggregates the outcome of one batch run. Per-product failures
// never abort the batch; they land here instead.
type BatchReport struct {
	Products      int
	ImagesCreated int
	Counts        map[string]int
	NoImages      []string
	Failures      []Failure
}

func (r *BatchReport) String() string {
	return fmt.Sprintf("%d products, %d images created, %d without image sources, %d failed",
		r.Products, r.ImagesCreated, len(r.NoImages), len(r.Failures))
}

// Importer drives batch ingestion: folder matching, per-product ingestion
// through the upload service, and report aggregation. Products are the
// parallelism boundary since every write for a product lands under its own
// images/{productCode}/ namespace.
type Importer struct {
	svc        *upload.Service
	sourceRoot string
	workers    int
}

func New(svc *upload.Service, sourceRoot string, workers int) *Importer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Importer{svc: svc, sourceRoot: sourceRoot, workers: workers}
}

type productResult struct {
	product Product
	images  []upload.SavedImage
	err     error
}

// Run ingests every product's source folder with a bounded worker pool and
// returns the aggregated report. Cancelling the context stops dispatching
// new products; in-flight products complete.
func (im *Importer) Run(ctx context.Context, products []Product) *BatchReport {
	jobs := make(chan Product)
	results := make(chan productResult, len(products))

	var wg sync.WaitGroup
	for i := 0; i < im.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for product := range jobs {
				images, err := im.ingestProduct(product)
				results <- productResult{product: product, images: images, err: err}
				log.Debugf("[Importer] Worker %d finished product %s (%d images)", id, product.Code, len(images))
			}
		}(i)
	}

dispatch:
	for _, product := range products {
		select {
		case <-ctx.Done():
			log.Warnf("[Importer] Batch cancelled after dispatching partial set: %v", ctx.Err())
			break dispatch
		case jobs <- product:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	report := &BatchReport{Counts: make(map[string]int)}
	for result := range results {
		report.Products++
		switch {
		case errors.Is(result.err, ErrNoSourceFolder):
			log.Warnf("[Importer] No image folder found for product %s", result.product.Code)
			report.NoImages = append(report.NoImages, result.product.Code)
		case result.err != nil:
			log.Errorf("[Importer] Product %s failed: %v", result.product.Code, result.err)
			report.Failures = append(report.Failures, Failure{Code: result.product.Code, Reason: result.err.Error()})
		default:
			report.Counts[result.product.Code] = len(result.images)
			report.ImagesCreated += len(result.images)
			if len(result.images) == 0 {
				report.NoImages = append(report.NoImages, result.product.Code)
			}
		}
	}

	log.Infof("[Importer] Batch complete: %s", report)
	return report
}

// ingestProduct matches the product's source folder and ingests every
// recognized image file in listing order through the upload service.
func (im *Importer) ingestProduct(product Product) ([]upload.SavedImage, error) {
	folder, err := FindSourceFolder(im.sourceRoot, product.Code)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading source folder %s: %w", folder, err)
	}

	var files []upload.File
	for _, entry := range entries {
		if entry.IsDir() || !upload.IsImageFile(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(folder, entry.Name()))
		if err != nil {
			log.Errorf("[Importer] Failed to read %s for product %s: %v", entry.Name(), product.Code, err)
			continue
		}
		files = append(files, upload.File{Data: data, Filename: entry.Name()})
	}

	images, err := im.svc.SaveProductImages(files, product.Code)
	if err != nil {
		return images, err
	}

	log.Infof("[Importer] Processed %d images for product %s", len(images), product.Code)
	return images, nil
}
