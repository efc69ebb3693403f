package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTextProducesPDF(t *testing.T) {
	dir := t.TempDir()
	s := NewRenderService(dir, testLogger())

	out, err := s.RenderText("Hello, world!\nSecond line.", "helvetica", "black", "a4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(out), "text_"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderTextRejectsUnknownChoices(t *testing.T) {
	s := NewRenderService(t.TempDir(), testLogger())

	_, err := s.RenderText("text", "comic-sans", "black", "a4")
	assert.Error(t, err)

	_, err = s.RenderText("text", "arial", "magenta", "a4")
	assert.Error(t, err)

	_, err = s.RenderText("text", "arial", "black", "a5")
	assert.Error(t, err)
}

func TestRenderExtractedTextProducesPDF(t *testing.T) {
	s := NewRenderService(t.TempDir(), testLogger())

	out, err := s.RenderExtractedText([]string{"first image text", "second image text"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderImagesRequiresImages(t *testing.T) {
	s := NewRenderService(t.TempDir(), testLogger())

	_, err := s.RenderImages(nil, "portrait")
	assert.Error(t, err)
}
