package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FileClient downloads Telegram-hosted files into the local temp directory.
// It talks to the Bot API directly so downloads get retries and timeouts
// independent of the long-polling connection.
type FileClient struct {
	client  *resty.Client
	token   string
	tempDir string
	logger  *logrus.Logger
}

type getFileResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		FileID   string `json:"file_id"`
		FilePath string `json:"file_path"`
		FileSize int64  `json:"file_size"`
	} `json:"result"`
	Description string `json:"description"`
}

// NewFileClient creates a new Telegram file download client
func NewFileClient(token, tempDir string, logger *logrus.Logger) *FileClient {
	client := resty.New().
		SetRetryCount(3).
		SetBaseURL("https://api.telegram.org")

	return &FileClient{
		client:  client,
		token:   token,
		tempDir: tempDir,
		logger:  logger,
	}
}

// Download fetches the file behind a Telegram file id into the temp
// directory and returns the local path. The prefix groups artifacts for
// the janitor; the extension is carried over from the remote name.
func (f *FileClient) Download(ctx context.Context, fileID, prefix, fileName string) (string, error) {
	var meta getFileResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("file_id", fileID).
		SetResult(&meta).
		SetError(&meta).
		Get(fmt.Sprintf("/bot%s/getFile", f.token))
	if err != nil {
		return "", fmt.Errorf("getFile request failed: %w", err)
	}
	if !resp.IsSuccess() || !meta.OK {
		return "", fmt.Errorf("getFile rejected: %s", meta.Description)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(meta.Result.FilePath))
	}
	localPath := filepath.Join(f.tempDir, fmt.Sprintf("%s%s%s", prefix, uuid.New().String(), ext))

	dl, err := f.client.R().
		SetContext(ctx).
		SetOutput(localPath).
		Get(fmt.Sprintf("/file/bot%s/%s", f.token, meta.Result.FilePath))
	if err != nil {
		return "", fmt.Errorf("file download failed: %w", err)
	}
	if !dl.IsSuccess() {
		os.Remove(localPath)
		return "", fmt.Errorf("file download returned status %d", dl.StatusCode())
	}

	f.logger.Debugf("Downloaded %s to %s", fileID, filepath.Base(localPath))
	return localPath, nil
}
