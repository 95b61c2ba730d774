package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glamcart/imagecore/internal/pkg/env"
	"github.com/glamcart/imagecore/internal/pkg/storage"
)

func main() {
	env.SetupEnvFile()

	var (
		storageRoot = flag.String("root", env.GetEnv("STORAGE_ROOT", "static"), "static assets root to scan")
		cleanup     = flag.Bool("cleanup", false, "remove directories left empty by deletions")
	)
	flag.Parse()

	layout, err := storage.NewLayout(*storageRoot)
	if err != nil {
		log.Fatalf("Failed to open storage root: %v", err)
	}

	anomalies, err := layout.VerifyVariantSets()
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	if len(anomalies) == 0 {
		fmt.Println("All variant sets are complete.")
	} else {
		fmt.Printf("Found %d incomplete variant sets:\n", len(anomalies))
		for _, anomaly := range anomalies {
			fmt.Printf("  %s/%s: %d present, %d missing\n",
				anomaly.ProductCode, anomaly.Stem, len(anomaly.Present), len(anomaly.Missing))
			for _, ref := range anomaly.Missing {
				fmt.Printf("    missing %s\n", ref)
			}
		}
	}

	if *cleanup {
		if err := layout.CleanupEmptyDirs(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Empty directories removed.")
	}

	if len(anomalies) > 0 {
		os.Exit(1)
	}
}
