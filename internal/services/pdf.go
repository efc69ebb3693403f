package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// PDFService transforms existing PDF files with pdfcpu
type PDFService struct {
	tempDir string
	logger  *logrus.Logger
}

// NewPDFService creates a new PDF service
func NewPDFService(tempDir string, logger *logrus.Logger) *PDFService {
	return &PDFService{tempDir: tempDir, logger: logger}
}

func (s *PDFService) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in the PDF
func (s *PDFService) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return count, nil
}

// Merge combines the given PDFs, in order, into one artifact
func (s *PDFService) Merge(paths []string) (string, error) {
	if len(paths) < 2 {
		return "", fmt.Errorf("need at least 2 PDFs to merge, got %d", len(paths))
	}

	out := filepath.Join(s.tempDir, "merge_"+uuid.NewString()+".pdf")
	if err := api.MergeCreateFile(paths, out, false, s.conf()); err != nil {
		return "", fmt.Errorf("failed to merge PDFs: %w", err)
	}

	s.logger.Debugf("Merged %d PDFs into %s", len(paths), out)
	return out, nil
}

// ExtractPages produces a new PDF containing only the given pages.
// Page numbers must be sorted, unique, and within the document.
func (s *PDFService) ExtractPages(path string, pages []int) (string, error) {
	if len(pages) == 0 {
		return "", fmt.Errorf("no pages selected")
	}

	selection := make([]string, len(pages))
	for i, p := range pages {
		selection[i] = strconv.Itoa(p)
	}

	out := filepath.Join(s.tempDir, "split_"+uuid.NewString()+".pdf")
	if err := api.TrimFile(path, out, selection, s.conf()); err != nil {
		return "", fmt.Errorf("failed to extract pages: %w", err)
	}

	s.logger.Debugf("Extracted %d pages from %s", len(pages), filepath.Base(path))
	return out, nil
}

// Encrypt produces a password-protected copy of the PDF
func (s *PDFService) Encrypt(path, password string) (string, error) {
	conf := s.conf()
	conf.UserPW = password
	conf.OwnerPW = password
	conf.EncryptUsingAES = true
	conf.EncryptKeyLength = 128

	out := filepath.Join(s.tempDir, "temp_protected_"+uuid.NewString()+".pdf")
	if err := api.EncryptFile(path, out, conf); err != nil {
		return "", fmt.Errorf("failed to encrypt PDF: %w", err)
	}

	return out, nil
}

// ExtractText pulls the text content out of a PDF, page by page. Quality
// depends on the PDF structure; scanned documents yield little or nothing.
func (s *PDFService) ExtractText(path string) (string, error) {
	tempDir, err := os.MkdirTemp(s.tempDir, "temp_content_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := api.ExtractContentFile(path, tempDir, nil, s.conf()); err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", err
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(tempDir, entry.Name()))
		if err != nil {
			continue
		}
		if text := textFromContentStream(string(raw)); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// textFromContentStream collects the literal strings of text-show operations
// (Tj, TJ, ', ") from a raw PDF content stream
func textFromContentStream(content string) string {
	var texts []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, " Tj") && !strings.Contains(line, " TJ") &&
			!strings.Contains(line, "' ") && !strings.Contains(line, "\" ") {
			continue
		}

		inText := false
		start := -1
		for i, ch := range line {
			switch {
			case ch == '(' && (i == 0 || line[i-1] != '\\'):
				inText = true
				start = i + 1
			case ch == ')' && inText && (i == 0 || line[i-1] != '\\'):
				if start != -1 && start < i {
					text := line[start:i]
					text = strings.ReplaceAll(text, "\\(", "(")
					text = strings.ReplaceAll(text, "\\)", ")")
					text = strings.ReplaceAll(text, "\\\\", "\\")
					if strings.TrimSpace(text) != "" {
						texts = append(texts, text)
					}
				}
				inText = false
				start = -1
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, " "))
}
