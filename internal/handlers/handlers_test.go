package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/config"
	"docusmith/internal/permissions"
	"docusmith/internal/services"
)

// fakeContext implements the telebot.Context methods the handlers use and
// records everything sent. Calling any other method panics.
type fakeContext struct {
	telebot.Context
	sender   *telebot.User
	text     string
	message  *telebot.Message
	callback *telebot.Callback
	sent     []interface{}
}

func (f *fakeContext) Sender() *telebot.User       { return f.sender }
func (f *fakeContext) Text() string                { return f.text }
func (f *fakeContext) Message() *telebot.Message   { return f.message }
func (f *fakeContext) Callback() *telebot.Callback { return f.callback }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*telebot.CallbackResponse) error { return nil }

// lastText returns the most recent text message sent, if any
func (f *fakeContext) lastText() string {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if s, ok := f.sent[i].(string); ok {
			return s
		}
	}
	return ""
}

// sentDocuments returns every document sent
func (f *fakeContext) sentDocuments() []*telebot.Document {
	var docs []*telebot.Document
	for _, item := range f.sent {
		if d, ok := item.(*telebot.Document); ok {
			docs = append(docs, d)
		}
	}
	return docs
}

func textContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender:  &telebot.User{ID: userID, FirstName: "Test"},
		text:    text,
		message: &telebot.Message{Text: text},
	}
}

func callbackContext(userID int64, data string) *fakeContext {
	return &fakeContext{
		sender:   &telebot.User{ID: userID, FirstName: "Test"},
		callback: &telebot.Callback{Data: "\f" + data},
	}
}

func photoContext(userID int64, fileID string) *fakeContext {
	return &fakeContext{
		sender: &telebot.User{ID: userID, FirstName: "Test"},
		message: &telebot.Message{
			Photo: &telebot.Photo{File: telebot.File{FileID: fileID}},
		},
	}
}

func documentContext(userID int64, fileID, fileName string) *fakeContext {
	return &fakeContext{
		sender: &telebot.User{ID: userID, FirstName: "Test"},
		message: &telebot.Message{
			Document: &telebot.Document{File: telebot.File{FileID: fileID}, FileName: fileName},
		},
	}
}

type fakeRenderer struct {
	out string
	err error
}

func (f *fakeRenderer) RenderText(text, font, color, size string) (string, error) {
	return f.out, f.err
}
func (f *fakeRenderer) RenderImages(imagePaths []string, orientation string) (string, error) {
	return f.out, f.err
}
func (f *fakeRenderer) RenderExtractedText(sections []string) (string, error) {
	return f.out, f.err
}

type fakePDF struct {
	pageCount int
	out       string
	text      string
	err       error

	mergedPaths    []string
	extractedPages []int
	encryptedWith  string
}

func (f *fakePDF) PageCount(path string) (int, error) { return f.pageCount, f.err }
func (f *fakePDF) Merge(paths []string) (string, error) {
	f.mergedPaths = paths
	return f.out, f.err
}
func (f *fakePDF) ExtractPages(path string, pages []int) (string, error) {
	f.extractedPages = pages
	return f.out, f.err
}
func (f *fakePDF) Encrypt(path, password string) (string, error) {
	f.encryptedWith = password
	return f.out, f.err
}
func (f *fakePDF) ExtractText(path string) (string, error) { return f.text, f.err }

type fakeConverter struct {
	out  string
	text string
	err  error
}

func (f *fakeConverter) Convert(path, fileName string) (string, error) { return f.out, f.err }
func (f *fakeConverter) ExtractText(path, ext string) (string, error)  { return f.text, f.err }

type fakeOCR struct {
	sections []string
	err      error
}

func (f *fakeOCR) ExtractAll(ctx context.Context, imagePaths []string) ([]string, error) {
	return f.sections, f.err
}

type fakeEnhancer struct {
	available bool
	result    string
	err       error
}

func (f *fakeEnhancer) Available() bool { return f.available }
func (f *fakeEnhancer) Enhance(ctx context.Context, content, docKind string) (string, error) {
	return f.result, f.err
}

type fakeDownloader struct {
	count int
	err   error
}

func (f *fakeDownloader) Download(ctx context.Context, fileID, prefix, fileName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.count++
	return fmt.Sprintf("/tmp/%s%d", prefix, f.count), nil
}

type fakeJanitor struct {
	removed []string
}

func (f *fakeJanitor) SweepNow() (int, int64) { return 0, 0 }
func (f *fakeJanitor) Stats() (int, int64)    { return 0, 0 }
func (f *fakeJanitor) Remove(path string)     { f.removed = append(f.removed, path) }

type fakeNotifier struct {
	delivered []int64
	failFor   map[int64]bool
}

func (f *fakeNotifier) Notify(chatID int64, text string) error {
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.delivered = append(f.delivered, chatID)
	return nil
}

type fakeDirectory struct {
	ids []int64
}

func (f *fakeDirectory) ChatIDs() []int64 { return f.ids }
func (f *fakeDirectory) Count() int       { return len(f.ids) }

// testEnv bundles a handler dependency set built entirely on fakes
type testEnv struct {
	deps       Deps
	sessions   *services.SessionService
	renderer   *fakeRenderer
	pdf        *fakePDF
	converter  *fakeConverter
	ocr        *fakeOCR
	enhancer   *fakeEnhancer
	downloader *fakeDownloader
	janitor    *fakeJanitor
	notifier   *fakeNotifier
	directory  *fakeDirectory
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	env := &testEnv{
		sessions:   services.NewSessionService(logger),
		renderer:   &fakeRenderer{out: "/tmp/text_1.pdf"},
		pdf:        &fakePDF{pageCount: 5, out: "/tmp/out.pdf", text: "extracted"},
		converter:  &fakeConverter{out: "/tmp/converted.pdf", text: "extracted"},
		ocr:        &fakeOCR{sections: []string{"hello"}},
		enhancer:   &fakeEnhancer{available: true, result: "enhanced"},
		downloader: &fakeDownloader{},
		janitor:    &fakeJanitor{},
		notifier:   &fakeNotifier{},
		directory:  &fakeDirectory{},
	}

	cfg := &config.Config{
		Master: config.MasterConfig{ID: 99, Password: "hunter22"},
	}
	cfg.TempDir = "/tmp"
	cfg.LogLevel = "info"

	env.deps = Deps{
		Sessions:    env.sessions,
		Permissions: permissions.NewController(cfg.Master.ID, cfg.Master.Password, logger),
		Renderer:    env.renderer,
		PDF:         env.pdf,
		Converter:   env.converter,
		OCR:         env.ocr,
		Enhancer:    env.enhancer,
		Downloader:  env.downloader,
		Janitor:     env.janitor,
		Notifier:    env.notifier,
		Users:       env.directory,
		Config:      cfg,
		Logger:      logger,
	}
	return env
}
