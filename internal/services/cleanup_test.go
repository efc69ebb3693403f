package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	if age > 0 {
		old := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	return path
}

func TestSweepNowDeletesOnlyAgedArtifacts(t *testing.T) {
	dir := t.TempDir()
	s := NewCleanupService(dir, 1, 1, testLogger())

	oldSplit := writeTempFile(t, dir, "split_abc.pdf", 2*time.Hour)
	oldImage := writeTempFile(t, dir, "img_abc.jpg", 2*time.Hour)
	fresh := writeTempFile(t, dir, "merge_new.pdf", 0)
	unrelated := writeTempFile(t, dir, "keep.pdf", 48*time.Hour)

	deleted, freed := s.SweepNow()

	assert.Equal(t, 2, deleted)
	assert.Equal(t, int64(8), freed)
	assert.NoFileExists(t, oldSplit)
	assert.NoFileExists(t, oldImage)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestStatsCountsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewCleanupService(dir, 1, 1, testLogger())

	writeTempFile(t, dir, "text_a.pdf", 0)
	writeTempFile(t, dir, "ocr_b.pdf", 0)
	writeTempFile(t, dir, "unrelated.txt", 0)

	count, size := s.Stats()
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(8), size)
}

func TestRemoveIgnoresMissingFile(t *testing.T) {
	dir := t.TempDir()
	s := NewCleanupService(dir, 1, 1, testLogger())

	path := writeTempFile(t, dir, "doc_x.docx", 0)
	s.Remove(path)
	assert.NoFileExists(t, path)

	// Removing again must not blow up
	s.Remove(path)
	s.Remove("")
}
