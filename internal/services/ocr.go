package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// OCRService extracts text from images by invoking the tesseract binary.
// Tesseract must be installed on the host; a missing binary surfaces as a
// capability error on first use, not at startup.
type OCRService struct {
	binary  string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewOCRService creates a new OCR service
func NewOCRService(logger *logrus.Logger) *OCRService {
	return &OCRService{
		binary:  "tesseract",
		timeout: 60 * time.Second,
		logger:  logger,
	}
}

// ExtractText runs OCR over one image and returns the recognized text,
// or an empty string when the image contains none
func (s *OCRService) ExtractText(ctx context.Context, imagePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// "-" writes the recognized text to stdout; psm 6 assumes a uniform
	// block of text, same as the original deployment
	cmd := exec.CommandContext(ctx, s.binary, imagePath, "-", "--psm", "6")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		s.logger.Errorf("tesseract failed for %s: %v (%s)", imagePath, err, strings.TrimSpace(stderr.String()))
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ExtractAll runs OCR over each image in order. Images with no recognizable
// text yield empty sections; an error on any image aborts the batch.
func (s *OCRService) ExtractAll(ctx context.Context, imagePaths []string) ([]string, error) {
	sections := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		text, err := s.ExtractText(ctx, path)
		if err != nil {
			return nil, err
		}
		sections = append(sections, text)
	}
	return sections, nil
}
