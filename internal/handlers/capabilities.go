package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"docusmith/internal/config"
	"docusmith/internal/permissions"
	"docusmith/internal/services"
)

// Renderer produces new PDF documents from text and images
type Renderer interface {
	RenderText(text, font, color, size string) (string, error)
	RenderImages(imagePaths []string, orientation string) (string, error)
	RenderExtractedText(sections []string) (string, error)
}

// PDFOps transforms existing PDF files
type PDFOps interface {
	PageCount(path string) (int, error)
	Merge(paths []string) (string, error)
	ExtractPages(path string, pages []int) (string, error)
	Encrypt(path, password string) (string, error)
	ExtractText(path string) (string, error)
}

// Converter turns office documents into PDFs and extracts their text
type Converter interface {
	Convert(path, fileName string) (string, error)
	ExtractText(path, ext string) (string, error)
}

// TextRecognizer extracts text from images
type TextRecognizer interface {
	ExtractAll(ctx context.Context, imagePaths []string) ([]string, error)
}

// Enhancer submits document text to a language model for improvement
type Enhancer interface {
	Available() bool
	Enhance(ctx context.Context, content, docKind string) (string, error)
}

// Downloader fetches Telegram-hosted files into the temp directory
type Downloader interface {
	Download(ctx context.Context, fileID, prefix, fileName string) (string, error)
}

// Janitor removes temp artifacts and reports on them
type Janitor interface {
	SweepNow() (int, int64)
	Stats() (int, int64)
	Remove(path string)
}

// Notifier delivers messages outside the current update, for broadcasts
type Notifier interface {
	Notify(chatID int64, text string) error
}

// UserDirectory exposes the set of chats the bot has seen
type UserDirectory interface {
	ChatIDs() []int64
	Count() int
}

// Deps bundles everything the handlers need. Conversion capabilities are
// interfaces so tests can swap them out.
type Deps struct {
	Sessions    *services.SessionService
	Permissions *permissions.Controller
	Renderer    Renderer
	PDF         PDFOps
	Converter   Converter
	OCR         TextRecognizer
	Enhancer    Enhancer
	Downloader  Downloader
	Janitor     Janitor
	Notifier    Notifier
	Users       UserDirectory
	Config      *config.Config
	Logger      *logrus.Logger
}
