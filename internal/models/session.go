package models

// ConversationState represents the step a user is at within a workflow
type ConversationState int

const (
	// StateDefault is the main-menu state; no workflow is in progress
	StateDefault ConversationState = iota
	// StateAwaitingText is the state when the user is sending text for conversion
	StateAwaitingText
	// StateChoosingFont is the state when the user is picking a font
	StateChoosingFont
	// StateChoosingColor is the state when the user is picking a text color
	StateChoosingColor
	// StateChoosingSize is the state when the user is picking a page size
	StateChoosingSize
	// StateAwaitingImages is the state when the user is uploading images
	StateAwaitingImages
	// StateChoosingOrientation is the state when the user is picking page orientation
	StateChoosingOrientation
	// StateAwaitingDocument is the state when the user is uploading a document
	StateAwaitingDocument
	// StateAwaitingMergePDFs is the state when the user is uploading PDFs to merge
	StateAwaitingMergePDFs
	// StateAwaitingSplitPDF is the state when the user is uploading the PDF to split
	StateAwaitingSplitPDF
	// StateAwaitingSplitPages is the state when the user is selecting pages to extract
	StateAwaitingSplitPages
	// StateAwaitingProtectPDF is the state when the user is uploading the PDF to protect
	StateAwaitingProtectPDF
	// StateAwaitingPassword is the state when the user is typing the PDF password
	StateAwaitingPassword
	// StateAwaitingOCRImages is the state when the user is uploading images for OCR
	StateAwaitingOCRImages
	// StateAwaitingAIDocument is the state when the user is uploading a file for AI analysis
	StateAwaitingAIDocument
	// StateAwaitingMasterPassword is the state when the master is authenticating
	StateAwaitingMasterPassword
	// StateAwaitingBroadcast is the state when the master is typing a broadcast message
	StateAwaitingBroadcast
)

// String returns a short name for logging
func (s ConversationState) String() string {
	names := map[ConversationState]string{
		StateDefault:                "default",
		StateAwaitingText:           "awaiting_text",
		StateChoosingFont:           "choosing_font",
		StateChoosingColor:          "choosing_color",
		StateChoosingSize:           "choosing_size",
		StateAwaitingImages:         "awaiting_images",
		StateChoosingOrientation:    "choosing_orientation",
		StateAwaitingDocument:       "awaiting_document",
		StateAwaitingMergePDFs:      "awaiting_merge_pdfs",
		StateAwaitingSplitPDF:       "awaiting_split_pdf",
		StateAwaitingSplitPages:     "awaiting_split_pages",
		StateAwaitingProtectPDF:     "awaiting_protect_pdf",
		StateAwaitingPassword:       "awaiting_password",
		StateAwaitingOCRImages:      "awaiting_ocr_images",
		StateAwaitingAIDocument:     "awaiting_ai_document",
		StateAwaitingMasterPassword: "awaiting_master_password",
		StateAwaitingBroadcast:      "awaiting_broadcast",
	}
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}

// Job holds the data a workflow accumulates between steps. Each workflow has
// its own variant carrying exactly the fields it needs; entering a workflow
// replaces the previous job wholesale, so stale fields from another workflow
// can never leak into a terminal action.
type Job interface {
	// TempFiles returns the local paths owned by this job so they can be
	// removed when the session is cleared.
	TempFiles() []string
}

// TextJob carries the text→PDF workflow selections
type TextJob struct {
	Text  string
	Font  string
	Color string
}

// TempFiles implements Job
func (j *TextJob) TempFiles() []string { return nil }

// ImageJob accumulates downloaded image paths in upload order
type ImageJob struct {
	Images []string
}

// TempFiles implements Job
func (j *ImageJob) TempFiles() []string { return j.Images }

// MergeJob accumulates downloaded PDF paths in upload order
type MergeJob struct {
	Files []string
}

// TempFiles implements Job
func (j *MergeJob) TempFiles() []string { return j.Files }

// SplitJob carries the split target and its page count
type SplitJob struct {
	Path      string
	PageCount int
}

// TempFiles implements Job
func (j *SplitJob) TempFiles() []string {
	if j.Path == "" {
		return nil
	}
	return []string{j.Path}
}

// ProtectJob carries the PDF awaiting password protection
type ProtectJob struct {
	Path string
	Name string
}

// TempFiles implements Job
func (j *ProtectJob) TempFiles() []string {
	if j.Path == "" {
		return nil
	}
	return []string{j.Path}
}

// OCRJob accumulates downloaded image paths for OCR in upload order
type OCRJob struct {
	Images []string
}

// TempFiles implements Job
func (j *OCRJob) TempFiles() []string { return j.Images }

// Session represents a user's conversation state and in-progress workflow data
type Session struct {
	State ConversationState
	Job   Job
}
