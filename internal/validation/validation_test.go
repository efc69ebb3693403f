package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "abc", wantErr: true},
		{name: "minimum length", password: "abcd", wantErr: false},
		{name: "long password", password: "correct horse battery staple", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocumentFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantErr  bool
	}{
		{name: "docx", fileName: "report.docx", wantErr: false},
		{name: "xlsx", fileName: "sheet.xlsx", wantErr: false},
		{name: "pptx", fileName: "slides.pptx", wantErr: false},
		{name: "html", fileName: "page.html", wantErr: false},
		{name: "txt", fileName: "notes.txt", wantErr: false},
		{name: "uppercase extension", fileName: "REPORT.DOCX", wantErr: false},
		{name: "pdf not convertible", fileName: "file.pdf", wantErr: true},
		{name: "legacy doc", fileName: "old.doc", wantErr: true},
		{name: "no extension", fileName: "README", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFile(tt.fileName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEnhanceFile(t *testing.T) {
	assert.NoError(t, ValidateEnhanceFile("scan.pdf"))
	assert.NoError(t, ValidateEnhanceFile("photo.jpeg"))
	assert.NoError(t, ValidateEnhanceFile("animation.webp"))
	assert.Error(t, ValidateEnhanceFile("archive.zip"))
	assert.Error(t, ValidateEnhanceFile("noext"))
}

func TestValidatePDFFile(t *testing.T) {
	assert.NoError(t, ValidatePDFFile("document.pdf"))
	assert.NoError(t, ValidatePDFFile("DOCUMENT.PDF"))
	assert.Error(t, ValidatePDFFile("document.docx"))
	assert.Error(t, ValidatePDFFile("pdf"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("pic.jpg"))
	assert.True(t, IsImageFile("pic.PNG"))
	assert.False(t, IsImageFile("pic.bmp"))
	assert.False(t, IsImageFile("doc.pdf"))
}
