package importer_test

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamcart/imagecore/internal/pkg/importer"
	"github.com/glamcart/imagecore/internal/pkg/storage"
	"github.com/glamcart/imagecore/internal/pkg/upload"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 30, G: 30, B: 180, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func buildSourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	// F01 resolves via leading-zero stripping, U1 via padding, Y1 via the
	// shifted hc- prefix. Z9 has no folder at all.
	dirs := map[string][]string{
		"F1":    {"a.png", "b.png"},
		"U01":   {"front.png"},
		"hc-Y2": {"hero.png"},
	}
	for dir, files := range dirs {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0755))
		for _, file := range files {
			writePNG(t, filepath.Join(root, dir, file), 320, 240)
		}
	}

	// Non-image files in a source folder are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "F1", "notes.txt"), []byte("n/a"), 0644))
	return root
}

func TestRunBatch(t *testing.T) {
	layout, err := storage.NewLayout(t.TempDir())
	require.NoError(t, err)
	sourceRoot := buildSourceTree(t)

	im := importer.New(upload.NewService(layout), sourceRoot, 2)
	report := im.Run(context.Background(), []importer.Product{
		{Code: "F01", Name: "F series one"},
		{Code: "U1"},
		{Code: "Y1"},
		{Code: "Z9"},
	})

	assert.Equal(t, 4, report.Products)
	assert.Equal(t, 4, report.ImagesCreated)
	assert.Equal(t, 2, report.Counts["F01"])
	assert.Equal(t, 1, report.Counts["U1"])
	assert.Equal(t, 1, report.Counts["Y1"])
	assert.Equal(t, []string{"Z9"}, report.NoImages)
	assert.Empty(t, report.Failures)

	// Each ingested image produced its full variant set under the product
	// code namespace, not the source folder name.
	entries, err := os.ReadDir(filepath.Join(layout.Root(), "images", "F01"))
	require.NoError(t, err)
	var files, dirs int
	for _, entry := range entries {
		if entry.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	assert.Equal(t, 4, dirs, "four size-class subdirectories")
	assert.Equal(t, 4, files, "two stems x two original formats")
}

func TestRunBatchMissingFoldersDoNotAbort(t *testing.T) {
	layout, err := storage.NewLayout(t.TempDir())
	require.NoError(t, err)
	sourceRoot := sourceRootWith(t, "A1")
	writePNG(t, filepath.Join(sourceRoot, "A1", "only.png"), 100, 100)

	im := importer.New(upload.NewService(layout), sourceRoot, 1)
	report := im.Run(context.Background(), []importer.Product{
		{Code: "M1"}, {Code: "A1"}, {Code: "M2"}, {Code: "M3"},
	})

	assert.Equal(t, 4, report.Products)
	assert.Equal(t, 1, report.ImagesCreated)
	assert.ElementsMatch(t, []string{"M1", "M2", "M3"}, report.NoImages)
	assert.Empty(t, report.Failures)
}

func TestRunBatchSkipsCorruptFiles(t *testing.T) {
	layout, err := storage.NewLayout(t.TempDir())
	require.NoError(t, err)
	sourceRoot := sourceRootWith(t, "B2")
	writePNG(t, filepath.Join(sourceRoot, "B2", "good.png"), 100, 100)
	require.NoError(t, os.WriteFile(filepath.Join(sourceRoot, "B2", "bad.png"),
		append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...), 0644))

	im := importer.New(upload.NewService(layout), sourceRoot, 1)
	report := im.Run(context.Background(), []importer.Product{{Code: "B2"}})

	assert.Equal(t, 1, report.ImagesCreated, "corrupt source is skipped, sibling survives")
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.NoImages)
}

func TestRunBatchCancelledContext(t *testing.T) {
	layout, err := storage.NewLayout(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := importer.New(upload.NewService(layout), t.TempDir(), 1)
	report := im.Run(ctx, []importer.Product{{Code: "F01"}, {Code: "U1"}})

	// Cancellation before dispatch means no product is guaranteed to run;
	// the report still aggregates whatever was dispatched.
	assert.LessOrEqual(t, report.Products, 2)
}
