package importer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamcart/imagecore/internal/pkg/importer"
)

func sourceRootWith(t *testing.T, folders ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, folder := range folders {
		require.NoError(t, os.Mkdir(filepath.Join(root, folder), 0755))
	}
	return root
}

func TestCandidateFoldersOrdering(t *testing.T) {
	assert.Equal(t, []string{"F01", "F1", "F01"}, importer.CandidateFolders("F01"))
	assert.Equal(t, []string{"U1", "U1", "U01"}, importer.CandidateFolders("U1"))
	assert.Equal(t,
		[]string{"Y1", "Y1", "Y01", "hc-Y2", "hc-Y1", "hc-Y01"},
		importer.CandidateFolders("Y1"))
	// Codes without a digit tail only get the exact candidate.
	assert.Equal(t, []string{"ABC"}, importer.CandidateFolders("ABC"))
}

func TestFindSourceFolderExactMatchWins(t *testing.T) {
	root := sourceRootWith(t, "F01", "F1")

	folder, err := importer.FindSourceFolder(root, "F01")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "F01"), folder)
}

func TestFindSourceFolderCaseInsensitive(t *testing.T) {
	root := sourceRootWith(t, "f01")

	folder, err := importer.FindSourceFolder(root, "F01")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "f01"), folder)
}

func TestFindSourceFolderStripsLeadingZero(t *testing.T) {
	root := sourceRootWith(t, "F1")

	folder, err := importer.FindSourceFolder(root, "F01")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "F1"), folder)
}

func TestFindSourceFolderPadsLeadingZero(t *testing.T) {
	root := sourceRootWith(t, "U01")

	folder, err := importer.FindSourceFolder(root, "U1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "U01"), folder)
}

func TestFindSourceFolderAltPrefixOffsetFirst(t *testing.T) {
	// Both the shifted and the direct mapping exist: the +1 offset wins.
	root := sourceRootWith(t, "hc-Y2", "hc-Y1")

	folder, err := importer.FindSourceFolder(root, "Y1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hc-Y2"), folder)
}

func TestFindSourceFolderAltPrefixDirectFallback(t *testing.T) {
	root := sourceRootWith(t, "hc-Y1")

	folder, err := importer.FindSourceFolder(root, "Y1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hc-Y1"), folder)
}

func TestFindSourceFolderNoMatch(t *testing.T) {
	root := sourceRootWith(t, "Q9")

	_, err := importer.FindSourceFolder(root, "F01")
	assert.ErrorIs(t, err, importer.ErrNoSourceFolder)
}

func TestFindSourceFolderIgnoresFiles(t *testing.T) {
	root := sourceRootWith(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "F01"), []byte("a file, not a folder"), 0644))

	_, err := importer.FindSourceFolder(root, "F01")
	assert.ErrorIs(t, err, importer.ErrNoSourceFolder)
}
