package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/glamcart/imagecore/internal/pkg/env"
	"github.com/glamcart/imagecore/internal/pkg/importer"
	"github.com/glamcart/imagecore/internal/pkg/storage"
	"github.com/glamcart/imagecore/internal/pkg/upload"
)

func main() {
	env.SetupEnvFile()

	var (
		productsFile = flag.String("products", "", "CSV file with product rows (code[,name])")
		sourceRoot   = flag.String("source", env.GetEnv("SOURCE_ROOT", ""), "directory containing per-product image folders")
		storageRoot  = flag.String("root", env.GetEnv("STORAGE_ROOT", "static"), "static assets root to write variants under")
		workers      = flag.Int("workers", envInt("IMPORT_WORKERS", importer.DefaultWorkers), "number of concurrent product workers")
	)
	flag.Parse()

	if *productsFile == "" || *sourceRoot == "" {
		flag.Usage()
		os.Exit(1)
	}

	products, err := readProducts(*productsFile)
	if err != nil {
		log.Fatalf("Failed to read products file: %v", err)
	}

	layout, err := storage.NewLayout(*storageRoot)
	if err != nil {
		log.Fatalf("Failed to prepare storage root: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	im := importer.New(upload.NewService(layout), *sourceRoot, *workers)
	report := im.Run(ctx, products)

	fmt.Printf("Import finished: %s\n", report)
	printCounts(report)
	if len(report.NoImages) > 0 {
		fmt.Println("Products without image sources:")
		for _, code := range report.NoImages {
			fmt.Printf("  %s\n", code)
		}
	}
	for _, failure := range report.Failures {
		fmt.Printf("FAILED %s: %s\n", failure.Code, failure.Reason)
	}
	if len(report.Failures) > 0 {
		os.Exit(1)
	}
}

// readProducts parses one product per CSV record: code in the first column,
// optional display name in the second. A header row starting with "code" is
// skipped.
func readProducts(path string) ([]importer.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var products []importer.Product
	for i, record := range records {
		if len(record) == 0 || record[0] == "" {
			continue
		}
		if i == 0 && record[0] == "code" {
			continue
		}
		product := importer.Product{Code: record[0]}
		if len(record) > 1 {
			product.Name = record[1]
		}
		products = append(products, product)
	}
	return products, nil
}

func printCounts(report *importer.BatchReport) {
	codes := make([]string, 0, len(report.Counts))
	for code := range report.Counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("  %s: %d images\n", code, report.Counts[code])
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(env.GetEnv(key, "")); err == nil {
		return v
	}
	return def
}
