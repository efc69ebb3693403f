package validation

import (
	"path/filepath"
	"strings"

	apperrors "docusmith/internal/errors"
)

// MinPasswordLength is the shortest accepted encryption password
const MinPasswordLength = 4

// documentExtensions is the accepted set for document conversion
var documentExtensions = map[string]bool{
	".docx": true,
	".xlsx": true,
	".pptx": true,
	".html": true,
	".txt":  true,
}

// enhanceExtensions is the accepted set for AI enhancement
var enhanceExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".pptx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".txt":  true,
}

// ValidatePassword checks an encryption password
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &apperrors.ValidationError{
			Field:   "password",
			Message: "password must be at least 4 characters long",
		}
	}
	return nil
}

// ValidateDocumentFile checks a file name against the conversion set
func ValidateDocumentFile(fileName string) error {
	if !documentExtensions[ext(fileName)] {
		return &apperrors.ValidationError{
			Field:   "document",
			Message: "unsupported file type, send docx, xlsx, pptx, html or txt",
		}
	}
	return nil
}

// ValidateEnhanceFile checks a file name against the AI enhancement set
func ValidateEnhanceFile(fileName string) error {
	if !enhanceExtensions[ext(fileName)] {
		return &apperrors.ValidationError{
			Field:   "document",
			Message: "unsupported file type for enhancement",
		}
	}
	return nil
}

// ValidatePDFFile checks that a file name looks like a PDF
func ValidatePDFFile(fileName string) error {
	if ext(fileName) != ".pdf" {
		return &apperrors.ValidationError{
			Field:   "document",
			Message: "please send a PDF file",
		}
	}
	return nil
}

// IsImageFile reports whether the file name has an image extension
func IsImageFile(fileName string) bool {
	switch ext(fileName) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

func ext(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}
