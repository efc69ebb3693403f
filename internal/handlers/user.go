package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/commands"
	apperrors "docusmith/internal/errors"
	"docusmith/internal/models"
	"docusmith/internal/pages"
	"docusmith/internal/permissions"
	"docusmith/internal/validation"
)

// UserHandler handles the document workflows available to every user
type UserHandler struct {
	BaseHandler
	commandHandlers  map[string]func(telebot.Context) error
	callbackHandlers map[string]func(context.Context, telebot.Context) error
}

// NewUserHandler creates a new user handler
func NewUserHandler(deps Deps) *UserHandler {
	handler := &UserHandler{
		BaseHandler: NewBaseHandler(deps),
	}

	handler.initializeCommands()
	return handler
}

// CanHandle checks if the handler can handle the given access type
func (h *UserHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.User
}

// Handle routes one update. Explicit commands and buttons run regardless of
// the current state; everything else is interpreted by the state the user's
// workflow is at.
func (h *UserHandler) Handle(ctx context.Context, c telebot.Context) error {
	if c.Callback() != nil {
		return h.handleCallback(ctx, c)
	}

	if msg := c.Message(); msg != nil && (msg.Photo != nil || msg.Document != nil) {
		return h.handleFile(ctx, c)
	}

	return h.handleText(ctx, c)
}

// initializeCommands initializes the command and callback handlers
func (h *UserHandler) initializeCommands() {
	h.commandHandlers = map[string]func(telebot.Context) error{
		commands.Start:    h.handleStart,
		commands.Help:     h.handleHelp,
		commands.TextPDF:  h.handleTextPDF,
		commands.ImagePDF: h.handleImagePDF,
		commands.DocPDF:   h.handleDocPDF,
		commands.MergePDF: h.handleMergePDF,
		commands.SplitPDF: h.handleSplitPDF,
	}

	h.callbackHandlers = map[string]func(context.Context, telebot.Context) error{
		commands.CallbackStart:    func(_ context.Context, c telebot.Context) error { return h.handleStart(c) },
		commands.CallbackHelp:     func(_ context.Context, c telebot.Context) error { return h.handleHelp(c) },
		commands.CallbackTextPDF:  func(_ context.Context, c telebot.Context) error { return h.handleTextPDF(c) },
		commands.CallbackImagePDF: func(_ context.Context, c telebot.Context) error { return h.handleImagePDF(c) },
		commands.CallbackDocPDF:   func(_ context.Context, c telebot.Context) error { return h.handleDocPDF(c) },
		commands.CallbackMergePDF: func(_ context.Context, c telebot.Context) error { return h.handleMergePDF(c) },
		commands.CallbackSplitPDF: func(_ context.Context, c telebot.Context) error { return h.handleSplitPDF(c) },
		commands.CallbackOCRPDF:   func(_ context.Context, c telebot.Context) error { return h.handleOCRPDF(c) },
		commands.CallbackProtect:  func(_ context.Context, c telebot.Context) error { return h.handleProtect(c) },
		commands.CallbackEnhance:  func(_ context.Context, c telebot.Context) error { return h.handleEnhance(c) },

		commands.CallbackImagesDone:  func(_ context.Context, c telebot.Context) error { return h.handleImagesDone(c) },
		commands.CallbackMergeDone:   func(_ context.Context, c telebot.Context) error { return h.handleMergeDone(c) },
		commands.CallbackOCRDone:     h.handleOCRDone,
		commands.CallbackCustomSplit: func(_ context.Context, c telebot.Context) error { return h.handleCustomSplit(c) },
	}
}

// handleText interprets a plain text message: commands first, then the
// current workflow step
func (h *UserHandler) handleText(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	if handler, ok := h.commandHandlers[c.Text()]; ok {
		return handler(c)
	}

	session := h.deps.Sessions.Get(userID)
	switch session.State {
	case models.StateAwaitingText:
		return h.handleTextInput(c)
	case models.StateAwaitingPassword:
		return h.handlePasswordInput(c)
	case models.StateAwaitingSplitPages:
		return h.finishSplit(c, c.Text())
	case models.StateAwaitingImages, models.StateAwaitingOCRImages:
		return h.sendTextMessage(c, "Please send images, or press Done when you are finished.", nil)
	case models.StateAwaitingMergePDFs:
		return h.sendTextMessage(c, "Please send PDF files, or press Done when you are finished.", nil)
	case models.StateAwaitingSplitPDF, models.StateAwaitingProtectPDF:
		return h.sendTextMessage(c, "Please send a PDF file.", nil)
	case models.StateAwaitingDocument, models.StateAwaitingAIDocument:
		return h.sendTextMessage(c, "Please send a document file.", nil)
	default:
		return h.handleStart(c)
	}
}

// handleCallback interprets an inline button press
func (h *UserHandler) handleCallback(ctx context.Context, c telebot.Context) error {
	defer func() { _ = c.Respond() }()

	data := callbackData(c)
	if handler, ok := h.callbackHandlers[data]; ok {
		return handler(ctx, c)
	}

	switch {
	case strings.HasPrefix(data, commands.PrefixFont):
		return h.handleFontChoice(c, strings.TrimPrefix(data, commands.PrefixFont))
	case strings.HasPrefix(data, commands.PrefixColor):
		return h.handleColorChoice(c, strings.TrimPrefix(data, commands.PrefixColor))
	case strings.HasPrefix(data, commands.PrefixSize):
		return h.handleSizeChoice(c, strings.TrimPrefix(data, commands.PrefixSize))
	case strings.HasPrefix(data, commands.PrefixOrient):
		return h.handleOrientationChoice(c, strings.TrimPrefix(data, commands.PrefixOrient))
	case strings.HasPrefix(data, commands.PrefixQuickSplit):
		return h.handleQuickSplit(c, strings.TrimPrefix(data, commands.PrefixQuickSplit))
	}

	h.deps.Logger.Warnf("Unknown callback from user %d: %s", c.Sender().ID, data)
	return h.handleStart(c)
}

// enterWorkflow discards any in-progress workflow and starts a fresh one
func (h *UserHandler) enterWorkflow(userID int64, state models.ConversationState, job models.Job) {
	h.discardJob(userID)
	h.deps.Sessions.SetState(userID, state)
	if job != nil {
		h.deps.Sessions.SetJob(userID, job)
	}
}

// handleStart handles the /start command and menu navigation
func (h *UserHandler) handleStart(c telebot.Context) error {
	h.discardJob(c.Sender().ID)
	return h.sendTextMessage(c, welcomeText(c.Sender().FirstName), h.mainMenuKeyboard())
}

// handleHelp handles the /help command
func (h *UserHandler) handleHelp(c telebot.Context) error {
	return h.sendTextMessage(c, helpText, h.mainMenuKeyboard())
}

// handleTextPDF starts the text conversion workflow
func (h *UserHandler) handleTextPDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingText, &models.TextJob{})
	return h.sendTextMessage(c, "📝 Send me the text you want to turn into a PDF.", nil)
}

// handleImagePDF starts the image conversion workflow
func (h *UserHandler) handleImagePDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingImages, &models.ImageJob{})
	return h.sendTextMessage(c,
		"🖼 Send me images one by one. Press Done when you have sent them all.",
		h.doneKeyboard(commands.CallbackImagesDone))
}

// handleOCRPDF starts the OCR workflow
func (h *UserHandler) handleOCRPDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingOCRImages, &models.OCRJob{})
	return h.sendTextMessage(c,
		"🔍 Send me photos of text. I will read them and build a searchable PDF. Press Done when finished.",
		h.doneKeyboard(commands.CallbackOCRDone))
}

// handleDocPDF starts the document conversion workflow
func (h *UserHandler) handleDocPDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingDocument, nil)
	return h.sendTextMessage(c, "📄 Send me a document (docx, xlsx, pptx, html or txt) and I will convert it to PDF.", nil)
}

// handleMergePDF starts the merge workflow
func (h *UserHandler) handleMergePDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingMergePDFs, &models.MergeJob{})
	return h.sendTextMessage(c,
		"🔗 Send me the PDFs to merge, in the order you want them. Press Done after at least two.",
		h.doneKeyboard(commands.CallbackMergeDone))
}

// handleSplitPDF starts the split workflow
func (h *UserHandler) handleSplitPDF(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingSplitPDF, nil)
	return h.sendTextMessage(c, "✂️ Send me the PDF you want to extract pages from.", nil)
}

// handleProtect starts the password protection workflow
func (h *UserHandler) handleProtect(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingProtectPDF, nil)
	return h.sendTextMessage(c, "🔒 Send me the PDF you want to protect with a password.", nil)
}

// handleEnhance starts the AI enhancement workflow
func (h *UserHandler) handleEnhance(c telebot.Context) error {
	if !h.deps.Enhancer.Available() {
		return h.sendTextMessage(c, "✨ AI enhancement is not configured on this bot.", h.mainMenuKeyboard())
	}

	h.enterWorkflow(c.Sender().ID, models.StateAwaitingAIDocument, nil)
	return h.sendTextMessage(c, "✨ Send me a document (pdf, docx, xlsx, pptx, txt or an image) and I will produce an enhanced version.", nil)
}

// handleTextInput stores the text and moves on to styling
func (h *UserHandler) handleTextInput(c telebot.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return h.sendTextMessage(c, "That message was empty. Send me the text for your PDF.", nil)
	}

	h.deps.Sessions.SetJob(userID, &models.TextJob{Text: text})
	h.deps.Sessions.SetState(userID, models.StateChoosingFont)
	return h.sendTextMessage(c, "Choose a font:", h.fontKeyboard())
}

// handleFontChoice stores the font and asks for the color
func (h *UserHandler) handleFontChoice(c telebot.Context, font string) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.TextJob)
	if session.State != models.StateChoosingFont || !ok {
		return h.handleStart(c)
	}

	job.Font = font
	h.deps.Sessions.SetJob(userID, job)
	h.deps.Sessions.SetState(userID, models.StateChoosingColor)
	return h.sendTextMessage(c, "Choose a text color:", h.colorKeyboard())
}

// handleColorChoice stores the color and asks for the page size
func (h *UserHandler) handleColorChoice(c telebot.Context, color string) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.TextJob)
	if session.State != models.StateChoosingColor || !ok {
		return h.handleStart(c)
	}

	job.Color = color
	h.deps.Sessions.SetJob(userID, job)
	h.deps.Sessions.SetState(userID, models.StateChoosingSize)
	return h.sendTextMessage(c, "Choose a page size:", h.sizeKeyboard())
}

// handleSizeChoice renders the text PDF with the accumulated selections
func (h *UserHandler) handleSizeChoice(c telebot.Context, size string) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.TextJob)
	if session.State != models.StateChoosingSize || !ok {
		return h.handleStart(c)
	}

	out, err := h.deps.Renderer.RenderText(job.Text, job.Font, job.Color, size)
	if err != nil {
		return h.failAndClear(c, userID, "text2pdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	return h.sendDocument(c, out, "text.pdf", "Here is your PDF 📄")
}

// handleImagesDone moves from collecting images to choosing the orientation
func (h *UserHandler) handleImagesDone(c telebot.Context) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.ImageJob)
	if session.State != models.StateAwaitingImages || !ok {
		return h.handleStart(c)
	}

	if len(job.Images) == 0 {
		return h.sendTextMessage(c, "You have not sent any images yet. Send at least one, then press Done.",
			h.doneKeyboard(commands.CallbackImagesDone))
	}

	h.deps.Sessions.SetState(userID, models.StateChoosingOrientation)
	return h.sendTextMessage(c, "Choose the page orientation:", h.orientationKeyboard())
}

// handleOrientationChoice renders the collected images into a PDF
func (h *UserHandler) handleOrientationChoice(c telebot.Context, orientation string) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.ImageJob)
	if session.State != models.StateChoosingOrientation || !ok {
		return h.handleStart(c)
	}

	out, err := h.deps.Renderer.RenderImages(job.Images, orientation)
	if err != nil {
		return h.failAndClear(c, userID, "img2pdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	return h.sendDocument(c, out, "images.pdf", fmt.Sprintf("%d image(s) combined 📄", len(job.Images)))
}

// handleOCRDone runs OCR over the collected images and builds the PDF
func (h *UserHandler) handleOCRDone(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.OCRJob)
	if session.State != models.StateAwaitingOCRImages || !ok {
		return h.handleStart(c)
	}

	if len(job.Images) == 0 {
		return h.sendTextMessage(c, "You have not sent any photos yet. Send at least one, then press Done.",
			h.doneKeyboard(commands.CallbackOCRDone))
	}

	if err := h.sendTextMessage(c, "🔍 Reading your images, this can take a moment...", nil); err != nil {
		return err
	}

	sections, err := h.deps.OCR.ExtractAll(ctx, job.Images)
	if err != nil {
		return h.failAndClear(c, userID, "ocr2pdf", err)
	}

	recognized := false
	for _, section := range sections {
		if strings.TrimSpace(section) != "" {
			recognized = true
			break
		}
	}
	if !recognized {
		return h.failAndClear(c, userID, "ocr2pdf", errors.New("no text recognized in any image"))
	}

	out, err := h.deps.Renderer.RenderExtractedText(sections)
	if err != nil {
		return h.failAndClear(c, userID, "ocr2pdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	return h.sendDocument(c, out, "ocr.pdf", "Here is the recognized text 📄")
}

// handleMergeDone merges the collected PDFs, requiring at least two
func (h *UserHandler) handleMergeDone(c telebot.Context) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.MergeJob)
	if session.State != models.StateAwaitingMergePDFs || !ok {
		return h.handleStart(c)
	}

	if len(job.Files) < 2 {
		return h.sendTextMessage(c,
			fmt.Sprintf("I need at least two PDFs to merge, you have sent %d. Send more, then press Done.", len(job.Files)),
			h.doneKeyboard(commands.CallbackMergeDone))
	}

	out, err := h.deps.PDF.Merge(job.Files)
	if err != nil {
		return h.failAndClear(c, userID, "mergepdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	return h.sendDocument(c, out, "merged.pdf", fmt.Sprintf("%d PDFs merged 📄", len(job.Files)))
}

// handleCustomSplit prompts for a free-text page selection
func (h *UserHandler) handleCustomSplit(c telebot.Context) error {
	session := h.deps.Sessions.Get(c.Sender().ID)
	if session.State != models.StateAwaitingSplitPages {
		return h.handleStart(c)
	}
	return h.sendTextMessage(c, "Send the pages you want, e.g. <code>1-3,5,8-10</code>.", nil)
}

// handleQuickSplit extracts the pages behind a quick-pick button
func (h *UserHandler) handleQuickSplit(c telebot.Context, spec string) error {
	return h.finishSplit(c, spec)
}

// finishSplit parses a page selection and extracts those pages. A selection
// that fails to parse keeps the state active and re-prompts.
func (h *UserHandler) finishSplit(c telebot.Context, spec string) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.SplitJob)
	if session.State != models.StateAwaitingSplitPages || !ok {
		return h.handleStart(c)
	}

	selected, err := pages.Parse(spec, job.PageCount)
	if err != nil {
		return h.sendTextMessage(c,
			fmt.Sprintf("I could not use that selection: %v. The document has %d pages, try again.", err, job.PageCount),
			h.splitKeyboard(job.PageCount))
	}

	out, err := h.deps.PDF.ExtractPages(job.Path, selected)
	if err != nil {
		return h.failAndClear(c, userID, "splitpdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	return h.sendDocument(c, out, "pages.pdf", fmt.Sprintf("%d page(s) extracted 📄", len(selected)))
}

// handlePasswordInput validates the password and encrypts the stored PDF
func (h *UserHandler) handlePasswordInput(c telebot.Context) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.ProtectJob)
	if session.State != models.StateAwaitingPassword || !ok {
		return h.handleStart(c)
	}

	password := c.Text()
	if err := validation.ValidatePassword(password); err != nil {
		var verr *apperrors.ValidationError
		msg := "That password will not work, try another one."
		if errors.As(err, &verr) {
			msg = verr.Message + ", try another one."
		}
		return h.sendTextMessage(c, msg, nil)
	}

	out, err := h.deps.PDF.Encrypt(job.Path, password)
	if err != nil {
		return h.failAndClear(c, userID, "protectpdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	name := "protected_" + job.Name
	return h.sendDocument(c, out, name, "🔒 Your PDF is now password protected.")
}

// handleFile interprets an uploaded photo or document by the current state
func (h *UserHandler) handleFile(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	session := h.deps.Sessions.Get(userID)

	switch session.State {
	case models.StateAwaitingImages:
		return h.collectImage(ctx, c, "img_", commands.CallbackImagesDone)
	case models.StateAwaitingOCRImages:
		return h.collectImage(ctx, c, "ocr_", commands.CallbackOCRDone)
	case models.StateAwaitingMergePDFs:
		return h.collectMergePDF(ctx, c)
	case models.StateAwaitingSplitPDF:
		return h.receiveSplitPDF(ctx, c)
	case models.StateAwaitingProtectPDF:
		return h.receiveProtectPDF(ctx, c)
	case models.StateAwaitingDocument:
		return h.receiveDocument(ctx, c)
	case models.StateAwaitingAIDocument:
		return h.receiveEnhanceDocument(ctx, c)
	default:
		return h.sendTextMessage(c, "I was not expecting a file. Pick an action first:", h.mainMenuKeyboard())
	}
}

// incomingFile returns the Telegram file id and name of the uploaded file
func incomingFile(c telebot.Context) (fileID, fileName string, isPhoto bool) {
	msg := c.Message()
	if msg.Photo != nil {
		return msg.Photo.FileID, "photo.jpg", true
	}
	if msg.Document != nil {
		return msg.Document.FileID, msg.Document.FileName, false
	}
	return "", "", false
}

// collectImage appends one image to the active accumulator and re-prompts
func (h *UserHandler) collectImage(ctx context.Context, c telebot.Context, prefix, doneCallback string) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if !isPhoto && !validation.IsImageFile(fileName) {
		return h.sendTextMessage(c, "That does not look like an image. Send a photo or an image file.",
			h.doneKeyboard(doneCallback))
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, prefix, fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}

	session := h.deps.Sessions.Get(userID)
	count := 0
	switch job := session.Job.(type) {
	case *models.ImageJob:
		job.Images = append(job.Images, path)
		count = len(job.Images)
		h.deps.Sessions.SetJob(userID, job)
	case *models.OCRJob:
		job.Images = append(job.Images, path)
		count = len(job.Images)
		h.deps.Sessions.SetJob(userID, job)
	default:
		h.deps.Janitor.Remove(path)
		return h.handleStart(c)
	}

	return h.sendTextMessage(c,
		fmt.Sprintf("Got it, %d image(s) so far. Send more or press Done.", count),
		h.doneKeyboard(doneCallback))
}

// collectMergePDF appends one PDF to the merge accumulator and re-prompts
func (h *UserHandler) collectMergePDF(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if isPhoto || validation.ValidatePDFFile(fileName) != nil {
		return h.sendTextMessage(c, "Please send a PDF file.", h.doneKeyboard(commands.CallbackMergeDone))
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, "merge_", fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}

	session := h.deps.Sessions.Get(userID)
	job, ok := session.Job.(*models.MergeJob)
	if !ok {
		h.deps.Janitor.Remove(path)
		return h.handleStart(c)
	}

	job.Files = append(job.Files, path)
	h.deps.Sessions.SetJob(userID, job)
	return h.sendTextMessage(c,
		fmt.Sprintf("Got it, %d PDF(s) so far. Send more or press Done.", len(job.Files)),
		h.doneKeyboard(commands.CallbackMergeDone))
}

// receiveSplitPDF stores the split target and offers the page selections
func (h *UserHandler) receiveSplitPDF(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if isPhoto || validation.ValidatePDFFile(fileName) != nil {
		return h.sendTextMessage(c, "Please send a PDF file.", nil)
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, "split_", fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}

	pageCount, err := h.deps.PDF.PageCount(path)
	if err != nil {
		h.deps.Janitor.Remove(path)
		return h.failAndClear(c, userID, "splitpdf", err)
	}

	h.deps.Sessions.SetJob(userID, &models.SplitJob{Path: path, PageCount: pageCount})
	h.deps.Sessions.SetState(userID, models.StateAwaitingSplitPages)
	return h.sendTextMessage(c,
		fmt.Sprintf("The document has %d pages. Which ones do you want?", pageCount),
		h.splitKeyboard(pageCount))
}

// receiveProtectPDF stores the protect target and asks for a password
func (h *UserHandler) receiveProtectPDF(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if isPhoto || validation.ValidatePDFFile(fileName) != nil {
		return h.sendTextMessage(c, "Please send a PDF file.", nil)
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, "doc_", fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}

	h.deps.Sessions.SetJob(userID, &models.ProtectJob{Path: path, Name: fileName})
	h.deps.Sessions.SetState(userID, models.StateAwaitingPassword)
	return h.sendTextMessage(c, "Now send me the password for the PDF (at least 4 characters).", nil)
}

// receiveDocument converts one uploaded office document to PDF
func (h *UserHandler) receiveDocument(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if isPhoto || validation.ValidateDocumentFile(fileName) != nil {
		return h.sendTextMessage(c, "I cannot convert that file. Send a docx, xlsx, pptx, html or txt document.", nil)
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, "doc_", fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}
	defer h.deps.Janitor.Remove(path)

	out, err := h.deps.Converter.Convert(path, fileName)
	if err != nil {
		return h.failAndClear(c, userID, "doc2pdf", err)
	}
	defer h.deps.Janitor.Remove(out)

	h.discardJob(userID)
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return h.sendDocument(c, out, base+".pdf", "Here is your converted document 📄")
}

// receiveEnhanceDocument extracts the document text and submits it to the
// language model. Unsupported or too-short content keeps the state active.
func (h *UserHandler) receiveEnhanceDocument(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	fileID, fileName, isPhoto := incomingFile(c)
	if !isPhoto && validation.ValidateEnhanceFile(fileName) != nil {
		return h.sendTextMessage(c, "I cannot analyze that file type. Send a pdf, docx, xlsx, pptx, txt or an image.", nil)
	}

	path, err := h.deps.Downloader.Download(ctx, fileID, "ai_", fileName)
	if err != nil {
		return h.failAndClear(c, userID, "download", err)
	}
	defer h.deps.Janitor.Remove(path)

	if err := h.sendTextMessage(c, "✨ Analyzing your document, this can take a minute...", nil); err != nil {
		return err
	}

	content, kind, err := h.extractForEnhancement(ctx, path, fileName, isPhoto)
	if err != nil {
		return h.failAndClear(c, userID, "ai_enhance", err)
	}
	if len(strings.TrimSpace(content)) < 50 {
		return h.sendTextMessage(c, "I could not find enough text in that file to work with. Try a different one.", nil)
	}

	result, err := h.deps.Enhancer.Enhance(ctx, content, kind)
	if err != nil {
		return h.failAndClear(c, userID, "ai_enhance", err)
	}

	h.discardJob(userID)
	return h.sendLongText(c, result)
}

// extractForEnhancement pulls plain text out of the uploaded file by its kind
func (h *UserHandler) extractForEnhancement(ctx context.Context, path, fileName string, isPhoto bool) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	if isPhoto || validation.IsImageFile(fileName) {
		sections, err := h.deps.OCR.ExtractAll(ctx, []string{path})
		if err != nil {
			return "", "", err
		}
		return strings.Join(sections, "\n"), "image", nil
	}

	if ext == ".pdf" {
		content, err := h.deps.PDF.ExtractText(path)
		return content, "PDF document", err
	}

	content, err := h.deps.Converter.ExtractText(path, ext)
	return content, strings.TrimPrefix(ext, ".") + " document", err
}
