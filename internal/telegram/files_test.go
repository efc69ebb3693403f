package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srvURL string) *FileClient {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := NewFileClient("token", t.TempDir(), logger)
	f.client.SetBaseURL(srvURL)
	f.client.SetRetryCount(0)
	return f
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getFile"):
			assert.Equal(t, "abc123", r.URL.Query().Get("file_id"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true,"result":{"file_id":"abc123","file_path":"documents/file_0.pdf","file_size":4}}`))
		case strings.Contains(r.URL.Path, "/file/bottoken/documents/file_0.pdf"):
			w.Write([]byte("%PDF"))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)

	path, err := f.Download(context.Background(), "abc123", "merge_", "input.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "merge_"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestDownloadExtensionFallsBackToRemoteName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/getFile") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true,"result":{"file_id":"p1","file_path":"photos/photo_7.jpg"}}`))
			return
		}
		w.Write([]byte("jpegdata"))
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)

	path, err := f.Download(context.Background(), "p1", "img_", "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestDownloadRejectedFileID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: invalid file_id"}`))
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)

	_, err := f.Download(context.Background(), "bogus", "img_", "x.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file_id")
}
