package handlers

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/commands"
	"docusmith/internal/pages"
	"docusmith/internal/permissions"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	deps Deps
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(deps Deps) BaseHandler {
	return BaseHandler{deps: deps}
}

// CanHandle checks if the handler can handle the given access type
func (h *BaseHandler) CanHandle(accessType permissions.AccessType) bool {
	// Base handler can't handle any access type directly
	return false
}

// sendTextMessage sends a text message with optional markup
func (h *BaseHandler) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeHTML,
	}

	if markup != nil {
		opts.ReplyMarkup = markup
	}

	if err := c.Send(text, opts); err != nil {
		h.deps.Logger.Errorf("Failed to send message: %v", err)
		return err
	}
	return nil
}

// sendDocument sends a local file as a Telegram document
func (h *BaseHandler) sendDocument(c telebot.Context, path, fileName, caption string) error {
	doc := &telebot.Document{
		File:     telebot.FromDisk(path),
		FileName: fileName,
		Caption:  caption,
	}

	if err := c.Send(doc); err != nil {
		h.deps.Logger.Errorf("Failed to send document %s: %v", fileName, err)
		return err
	}
	return nil
}

// sendLongText sends text in chunks that fit inside a Telegram message
func (h *BaseHandler) sendLongText(c telebot.Context, text string) error {
	const chunkSize = 4000

	for len(text) > 0 {
		chunk := text
		if len(chunk) > chunkSize {
			cut := strings.LastIndex(chunk[:chunkSize], "\n")
			if cut < chunkSize/2 {
				cut = chunkSize
			}
			chunk = chunk[:cut]
		}
		text = strings.TrimPrefix(text, chunk)

		if err := c.Send(chunk); err != nil {
			h.deps.Logger.Errorf("Failed to send message chunk: %v", err)
			return err
		}
	}
	return nil
}

// callbackData returns the normalized payload of an inline button press
func callbackData(c telebot.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
}

// discardJob removes the session's accumulated temp files and clears it
func (h *BaseHandler) discardJob(userID int64) {
	session := h.deps.Sessions.Get(userID)
	if session.Job != nil {
		for _, path := range session.Job.TempFiles() {
			h.deps.Janitor.Remove(path)
		}
	}
	h.deps.Sessions.Clear(userID)
}

// failAndClear implements the uniform terminal-action failure policy: the
// error is logged, the session fully cleared, and a generic failure reported
func (h *BaseHandler) failAndClear(c telebot.Context, userID int64, workflow string, err error) error {
	h.deps.Logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"workflow": workflow,
	}).Errorf("Workflow failed: %v", err)

	h.discardJob(userID)
	return h.sendTextMessage(c,
		"Something went wrong while processing your request. Please start over from the menu.",
		h.mainMenuKeyboard())
}

// mainMenuKeyboard creates the workflow selection keyboard
func (h *BaseHandler) mainMenuKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	markup.Inline(
		telebot.Row{
			markup.Data("📝 Text → PDF", commands.CallbackTextPDF),
			markup.Data("🖼 Images → PDF", commands.CallbackImagePDF),
		},
		telebot.Row{
			markup.Data("📄 Document → PDF", commands.CallbackDocPDF),
			markup.Data("🔍 OCR → PDF", commands.CallbackOCRPDF),
		},
		telebot.Row{
			markup.Data("🔗 Merge PDFs", commands.CallbackMergePDF),
			markup.Data("✂️ Split PDF", commands.CallbackSplitPDF),
		},
		telebot.Row{
			markup.Data("🔒 Protect PDF", commands.CallbackProtect),
			markup.Data("✨ AI Enhance", commands.CallbackEnhance),
		},
	)
	return markup
}

// fontKeyboard creates the font selection keyboard
func (h *BaseHandler) fontKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("Arial", commands.PrefixFont+"arial"),
			markup.Data("Times", commands.PrefixFont+"times"),
		},
		telebot.Row{
			markup.Data("Helvetica", commands.PrefixFont+"helvetica"),
			markup.Data("Courier", commands.PrefixFont+"courier"),
		},
	)
	return markup
}

// colorKeyboard creates the text color selection keyboard
func (h *BaseHandler) colorKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("⚫ Black", commands.PrefixColor+"black"),
			markup.Data("🔵 Blue", commands.PrefixColor+"blue"),
		},
		telebot.Row{
			markup.Data("🔴 Red", commands.PrefixColor+"red"),
			markup.Data("🟢 Green", commands.PrefixColor+"green"),
		},
	)
	return markup
}

// sizeKeyboard creates the page size selection keyboard
func (h *BaseHandler) sizeKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("A4", commands.PrefixSize+"a4"),
			markup.Data("Letter", commands.PrefixSize+"letter"),
			markup.Data("Legal", commands.PrefixSize+"legal"),
		},
	)
	return markup
}

// orientationKeyboard creates the page orientation selection keyboard
func (h *BaseHandler) orientationKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("📱 Portrait", commands.PrefixOrient+"portrait"),
			markup.Data("🖥 Landscape", commands.PrefixOrient+"landscape"),
		},
	)
	return markup
}

// doneKeyboard creates a keyboard with a single done button
func (h *BaseHandler) doneKeyboard(callback string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("✅ Done", callback),
		},
	)
	return markup
}

// splitKeyboard creates the page selection keyboard for a document of the
// given size: the quick picks plus the custom range button
func (h *BaseHandler) splitKeyboard(pageCount int) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	var rows []telebot.Row
	var row telebot.Row
	for _, pick := range pages.QuickPicks(pageCount) {
		row = append(row, markup.Data(pick.Label, commands.PrefixQuickSplit+pick.Spec))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, telebot.Row{
		markup.Data("✏️ Custom range", commands.CallbackCustomSplit),
	})

	markup.Inline(rows...)
	return markup
}

// welcomeText is the greeting shown on /start
func welcomeText(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("👋 Hi %s!\n\n"+
		"I turn text, images and documents into PDFs, and I can merge, split and password-protect the PDFs you already have.\n\n"+
		"Pick an action below or use the commands from /help.", name)
}

// helpText lists the available commands
const helpText = "Here is what I can do:\n\n" +
	"/txt2pdf - turn text into a styled PDF\n" +
	"/img2pdf - combine images into a PDF\n" +
	"/doc2pdf - convert docx, xlsx, pptx, html or txt to PDF\n" +
	"/mergepdf - merge two or more PDFs\n" +
	"/splitpdf - extract pages from a PDF\n\n" +
	"From the menu you can also run OCR on photos, password-protect a PDF and get an AI-enhanced version of a document.\n\n" +
	"/start - back to the main menu"
