package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fonts maps the font choices offered in chat to core PDF font families
var fonts = map[string]string{
	"arial":     "Arial",
	"times":     "Times",
	"helvetica": "Helvetica",
	"courier":   "Courier",
}

// colors maps the color choices offered in chat to RGB values
var colors = map[string][3]int{
	"black": {0, 0, 0},
	"blue":  {0, 0, 255},
	"red":   {255, 0, 0},
	"green": {0, 128, 0},
}

// pageSizes maps the size choices offered in chat to fpdf size names
var pageSizes = map[string]string{
	"a4":     "A4",
	"letter": "Letter",
	"legal":  "Legal",
}

// RenderService produces new PDF documents from text and images
type RenderService struct {
	tempDir string
	logger  *logrus.Logger
}

// NewRenderService creates a new render service
func NewRenderService(tempDir string, logger *logrus.Logger) *RenderService {
	return &RenderService{tempDir: tempDir, logger: logger}
}

// RenderText renders free text into a styled PDF and returns the artifact path
func (s *RenderService) RenderText(text, font, color, size string) (string, error) {
	family, ok := fonts[font]
	if !ok {
		return "", fmt.Errorf("unknown font: %s", font)
	}
	rgb, ok := colors[color]
	if !ok {
		return "", fmt.Errorf("unknown color: %s", color)
	}
	pageSize, ok := pageSizes[size]
	if !ok {
		return "", fmt.Errorf("unknown page size: %s", size)
	}

	pdf := fpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	pdf.SetFont(family, "", 12)
	pdf.SetTextColor(rgb[0], rgb[1], rgb[2])

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.MultiCell(0, 6, tr(text), "", "L", false)

	out := filepath.Join(s.tempDir, "text_"+uuid.NewString()+".pdf")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("failed to render text PDF: %w", err)
	}

	s.logger.Debugf("Rendered text PDF: %s (%d chars)", out, len(text))
	return out, nil
}

// RenderImages lays the given images out one per page, scaled to fit, and
// returns the artifact path. Orientation is "portrait" or "landscape".
func (s *RenderService) RenderImages(imagePaths []string, orientation string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("no images to render")
	}

	orient := "P"
	if orientation == "landscape" {
		orient = "L"
	}

	pdf := fpdf.New(orient, "mm", "A4", "")
	opts := fpdf.ImageOptions{ReadDpi: true}

	for _, path := range imagePaths {
		info := pdf.RegisterImageOptions(path, opts)
		if pdf.Err() {
			return "", fmt.Errorf("failed to read image %s: %v", filepath.Base(path), pdf.Error())
		}

		pdf.AddPage()
		pageW, pageH := pdf.GetPageSize()
		const margin = 10.0
		availW, availH := pageW-2*margin, pageH-2*margin

		w, h := info.Extent()
		scale := availW / w
		if h*scale > availH {
			scale = availH / h
		}
		w, h = w*scale, h*scale

		x := margin + (availW-w)/2
		y := margin + (availH-h)/2
		pdf.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	}

	out := filepath.Join(s.tempDir, "img_"+uuid.NewString()+".pdf")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("failed to render image PDF: %w", err)
	}

	s.logger.Debugf("Rendered image PDF: %s (%d images, %s)", out, len(imagePaths), orientation)
	return out, nil
}

// RenderExtractedText renders OCR output into a searchable PDF, one section
// per source image, and returns the artifact path
func (s *RenderService) RenderExtractedText(sections []string) (string, error) {
	if len(sections) == 0 {
		return "", fmt.Errorf("no text sections to render")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, section := range sections {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, fmt.Sprintf("Image %d", i+1), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr(strings.TrimSpace(section)), "", "L", false)
	}

	out := filepath.Join(s.tempDir, "ocr_"+uuid.NewString()+".pdf")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("failed to render OCR PDF: %w", err)
	}

	return out, nil
}
