package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// SupportedDocumentExtensions is the fixed accepted set for document→PDF
var SupportedDocumentExtensions = []string{".docx", ".xlsx", ".pptx", ".html", ".txt"}

// ConvertService turns office documents into PDFs by extracting their text
// content and rendering it. OOXML containers (docx, xlsx, pptx) are read
// directly as zip+xml; HTML goes through goquery.
type ConvertService struct {
	renderer *RenderService
	logger   *logrus.Logger
}

// NewConvertService creates a new document conversion service
func NewConvertService(renderer *RenderService, logger *logrus.Logger) *ConvertService {
	return &ConvertService{renderer: renderer, logger: logger}
}

// IsSupported reports whether the file name has an accepted extension
func IsSupported(fileName string) bool {
	name := strings.ToLower(fileName)
	for _, ext := range SupportedDocumentExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Convert extracts the document's text and renders it into a PDF artifact
func (s *ConvertService) Convert(path, fileName string) (string, error) {
	text, err := s.ExtractText(path, strings.ToLower(filepath.Ext(fileName)))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no readable content in %s", fileName)
	}

	out, err := s.renderer.RenderText(text, "helvetica", "black", "a4")
	if err != nil {
		return "", fmt.Errorf("failed to render converted document: %w", err)
	}

	s.logger.Debugf("Converted %s to %s", fileName, filepath.Base(out))
	return out, nil
}

// ExtractText pulls plain text out of a document by extension
func (s *ConvertService) ExtractText(path, ext string) (string, error) {
	switch ext {
	case ".docx":
		return extractOOXML(path, []string{"word/document.xml"})
	case ".pptx":
		return extractOOXML(path, nil) // slides resolved by prefix
	case ".xlsx":
		return extractOOXML(path, []string{"xl/sharedStrings.xml"})
	case ".html", ".htm":
		return extractHTML(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported extension: %s", ext)
	}
}

var slideName = regexp.MustCompile(`^ppt/slides/slide\d+\.xml$`)

// extractOOXML reads the named parts of an OOXML container and collects
// their text runs. With no explicit parts, presentation slides are used.
func extractOOXML(path string, parts []string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer r.Close()

	wanted := make(map[string]bool, len(parts))
	for _, p := range parts {
		wanted[p] = true
	}

	var names []string
	files := make(map[string]*zip.File)
	for _, f := range r.File {
		if wanted[f.Name] || (len(parts) == 0 && slideName.MatchString(f.Name)) {
			files[f.Name] = f
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("document has no readable parts")
	}
	sort.Strings(names)

	var sections []string
	for _, name := range names {
		rc, err := files[name].Open()
		if err != nil {
			return "", err
		}
		text, err := collectTextRuns(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if text != "" {
			sections = append(sections, text)
		}
	}

	return strings.Join(sections, "\n\n"), nil
}

// collectTextRuns walks an OOXML part and gathers character data inside <t>
// elements (w:t in docx, a:t in pptx, t in xlsx shared strings), inserting
// line breaks at paragraph and row boundaries.
func collectTextRuns(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "si", "row", "br":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// extractHTML returns the visible text of an HTML document
func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style").Remove()
	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	// Collapse runs of blank lines and indentation left by markup
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n"), nil
}
