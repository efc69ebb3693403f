package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// cleanupPatterns matches the temp artifacts the workflows produce
var cleanupPatterns = []string{
	"split_*.pdf",
	"merge_*.pdf",
	"img_*",
	"doc_*",
	"text_*.pdf",
	"ocr_*",
	"ai_*",
	"*.tmp",
	"temp_*",
}

// CleanupService deletes aged temp artifacts. Workflows remove their own
// files on every exit path; the sweep backstops anything leaked by a crash
// or an abandoned session.
type CleanupService struct {
	tempDir  string
	maxAge   time.Duration
	interval time.Duration
	logger   *logrus.Logger
}

// NewCleanupService creates a new cleanup service for the given temp directory
func NewCleanupService(tempDir string, maxAgeHours, intervalHours int, logger *logrus.Logger) *CleanupService {
	return &CleanupService{
		tempDir:  tempDir,
		maxAge:   time.Duration(maxAgeHours) * time.Hour,
		interval: time.Duration(intervalHours) * time.Hour,
		logger:   logger,
	}
}

// SweepNow deletes matching files older than the configured age and reports
// how many files and bytes were removed
func (s *CleanupService) SweepNow() (int, int64) {
	cutoff := time.Now().Add(-s.maxAge)
	deleted := 0
	var freed int64

	for _, path := range s.matchingFiles() {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		size := info.Size()
		if err := os.Remove(path); err != nil {
			continue
		}
		deleted++
		freed += size
		s.logger.Infof("Deleted temp file: %s", path)
	}

	s.logger.Infof("Cleanup completed: %d files deleted, %.2f MB freed", deleted, float64(freed)/1024/1024)
	return deleted, freed
}

// Stats reports the count and total size of matching temp files
func (s *CleanupService) Stats() (int, int64) {
	count := 0
	var size int64

	for _, path := range s.matchingFiles() {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		count++
		size += info.Size()
	}

	return count, size
}

// Remove deletes one file immediately, ignoring a file that is already gone
func (s *CleanupService) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Errorf("Failed to clean up file %s: %v", path, err)
		}
		return
	}
	s.logger.Debugf("Cleaned up file: %s", path)
}

// Run sweeps on the configured interval until the context is canceled
func (s *CleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Infof("Automatic cleanup scheduled every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepNow()
		}
	}
}

func (s *CleanupService) matchingFiles() []string {
	var files []string
	for _, pattern := range cleanupPatterns {
		matches, err := filepath.Glob(filepath.Join(s.tempDir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	return files
}
