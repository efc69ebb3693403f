package commands

// Slash commands understood by the bot
const (
	Start    = "/start"
	Help     = "/help"
	TextPDF  = "/txt2pdf"
	ImagePDF = "/img2pdf"
	DocPDF   = "/doc2pdf"
	MergePDF = "/mergepdf"
	SplitPDF = "/splitpdf"
	Master   = "/master"
	Admin    = "/admin"
)

// Callback identifiers for inline keyboard buttons
const (
	CallbackStart    = "start"
	CallbackHelp     = "help"
	CallbackTextPDF  = "txt2pdf"
	CallbackImagePDF = "img2pdf"
	CallbackOCRPDF   = "ocr2pdf"
	CallbackDocPDF   = "doc2pdf"
	CallbackMergePDF = "mergepdf"
	CallbackSplitPDF = "splitpdf"
	CallbackProtect  = "password_protect"
	CallbackEnhance  = "ai_enhance"

	CallbackImagesDone = "img_done"
	CallbackMergeDone  = "merge_done"
	CallbackOCRDone    = "ocr_done"

	CallbackCustomSplit = "custom_split"
)

// Callback prefixes for parameterized buttons
const (
	PrefixFont       = "font_"
	PrefixColor      = "color_"
	PrefixSize       = "size_"
	PrefixOrient     = "orient_"
	PrefixQuickSplit = "quick_split_"
	PrefixMaster     = "master_"
)

// Master panel callback identifiers
const (
	MasterPanel     = "master_panel"
	MasterStats     = "master_stats"
	MasterCleanup   = "master_cleanup"
	MasterBroadcast = "master_broadcast"
	MasterUsers     = "master_users"
	MasterSettings  = "master_settings"
	MasterLogs      = "master_logs"
)
