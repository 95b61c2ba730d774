package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoSourceFolder marks a product for which no candidate folder resolved.
// The batch records it and moves on; it is never fatal for the batch.
var ErrNoSourceFolder = errors.New("no matching image source folder")

// Series whose source folders were delivered under an alternate "hc-" prefix
// with the numbering shifted by one.
const altPrefixSeries = "Y"

// A matchStrategy is a pure function from product code to candidate folder
// names. Strategies are evaluated in priority order and the first candidate
// that resolves to an existing folder wins.
type matchStrategy struct {
	name       string
	candidates func(code string) []string
}

var matchStrategies = []matchStrategy{
	{
		name:       "exact",
		candidates: func(code string) []string { return []string{code} },
	},
	{
		// F01 -> F1
		name: "strip-leading-zero",
		candidates: func(code string) []string {
			letter, digits, ok := splitLetterDigits(code)
			if !ok {
				return nil
			}
			n, _ := strconv.Atoi(digits)
			return []string{letter + strconv.Itoa(n)}
		},
	},
	{
		// U1 -> U01
		name: "pad-leading-zero",
		candidates: func(code string) []string {
			letter, digits, ok := splitLetterDigits(code)
			if !ok {
				return nil
			}
			n, _ := strconv.Atoi(digits)
			return []string{letter + fmt.Sprintf("%02d", n)}
		},
	},
	{
		// The Y series folders arrived shifted by one: Y1 -> hc-Y2, with the
		// direct and zero-padded mappings as fallbacks.
		name: "alt-prefix",
		candidates: func(code string) []string {
			if !strings.HasPrefix(code, altPrefixSeries) {
				return nil
			}
			_, digits, ok := splitLetterDigits(code)
			if !ok {
				return nil
			}
			n, _ := strconv.Atoi(digits)
			return []string{
				fmt.Sprintf("hc-%s%d", altPrefixSeries, n+1),
				fmt.Sprintf("hc-%s%d", altPrefixSeries, n),
				fmt.Sprintf("hc-%s%02d", altPrefixSeries, n),
			}
		},
	},
}

// CandidateFolders returns every candidate folder name for a product code in
// evaluation order. Exposed so the heuristic is testable in isolation.
func CandidateFolders(code string) []string {
	var out []string
	for _, strategy := range matchStrategies {
		out = append(out, strategy.candidates(code)...)
	}
	return out
}

// FindSourceFolder locates the source image folder for a product code inside
// sourceRoot. Matching is case-insensitive against the directory listing.
func FindSourceFolder(sourceRoot, code string) (string, error) {
	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		return "", fmt.Errorf("reading source root %s: %w", sourceRoot, err)
	}

	byLower := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if _, exists := byLower[lower]; !exists {
			byLower[lower] = entry.Name()
		}
	}

	for _, candidate := range CandidateFolders(code) {
		if actual, ok := byLower[strings.ToLower(candidate)]; ok {
			return filepath.Join(sourceRoot, actual), nil
		}
	}
	return "", fmt.Errorf("product %s: %w", code, ErrNoSourceFolder)
}

// splitLetterDigits splits codes of the form letter-then-digits, e.g. "F01".
func splitLetterDigits(code string) (letter, digits string, ok bool) {
	if len(code) < 2 {
		return "", "", false
	}
	for _, r := range code[1:] {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return code[:1], code[1:], true
}
