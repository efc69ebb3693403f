package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/commands"
	"docusmith/internal/models"
	"docusmith/internal/permissions"
)

// MasterHandler adds the admin panel on top of the regular workflows. Every
// panel action requires both the configured master identity and a live
// authentication.
type MasterHandler struct {
	*UserHandler
	startedAt time.Time
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(deps Deps) *MasterHandler {
	return &MasterHandler{
		UserHandler: NewUserHandler(deps),
		startedAt:   time.Now(),
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *MasterHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Master
}

// Handle routes one update, checking master-specific commands and states
// before falling back to the regular workflows
func (h *MasterHandler) Handle(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	if cb := c.Callback(); cb != nil {
		if data := callbackData(c); strings.HasPrefix(data, commands.PrefixMaster) {
			defer func() { _ = c.Respond() }()
			return h.handleMasterCallback(c, data)
		}
		return h.UserHandler.Handle(ctx, c)
	}

	switch c.Text() {
	case commands.Master, commands.Admin:
		return h.handleMasterEntry(c)
	}

	session := h.deps.Sessions.Get(userID)
	switch session.State {
	case models.StateAwaitingMasterPassword:
		if _, isCommand := h.commandHandlers[c.Text()]; !isCommand {
			return h.handleMasterPassword(c)
		}
	case models.StateAwaitingBroadcast:
		if _, isCommand := h.commandHandlers[c.Text()]; !isCommand {
			return h.handleBroadcastInput(c)
		}
	}

	return h.UserHandler.Handle(ctx, c)
}

// handleMasterEntry handles the /master command
func (h *MasterHandler) handleMasterEntry(c telebot.Context) error {
	userID := c.Sender().ID

	if !h.deps.Permissions.IsMaster(userID) {
		h.deps.Logger.Warnf("User %d tried to open the admin panel", userID)
		return h.sendTextMessage(c, "This command is not available.", nil)
	}

	if !h.deps.Permissions.IsAuthenticated(userID) {
		h.enterWorkflow(userID, models.StateAwaitingMasterPassword, nil)
		return h.sendTextMessage(c, "🔑 Enter the master password:", nil)
	}

	return h.showPanel(c)
}

// handleMasterPassword checks the master password
func (h *MasterHandler) handleMasterPassword(c telebot.Context) error {
	userID := c.Sender().ID

	if !h.deps.Permissions.Authenticate(userID, c.Text()) {
		return h.sendTextMessage(c, "Wrong password, try again:", nil)
	}

	h.deps.Sessions.Clear(userID)
	return h.showPanel(c)
}

// requireMaster guards a panel action
func (h *MasterHandler) requireMaster(c telebot.Context) bool {
	userID := c.Sender().ID
	return h.deps.Permissions.IsMaster(userID) && h.deps.Permissions.IsAuthenticated(userID)
}

// handleMasterCallback routes an admin panel button press
func (h *MasterHandler) handleMasterCallback(c telebot.Context, data string) error {
	if !h.requireMaster(c) {
		h.deps.Logger.Warnf("Unauthorized admin callback from user %d: %s", c.Sender().ID, data)
		return h.sendTextMessage(c, "This action is not available.", nil)
	}

	switch data {
	case commands.MasterPanel:
		return h.showPanel(c)
	case commands.MasterStats:
		return h.showStats(c)
	case commands.MasterCleanup:
		return h.runCleanup(c)
	case commands.MasterBroadcast:
		return h.startBroadcast(c)
	case commands.MasterUsers:
		return h.showUsers(c)
	case commands.MasterSettings:
		return h.showSettings(c)
	case commands.MasterLogs:
		return h.showLogs(c)
	default:
		return h.showPanel(c)
	}
}

// panelKeyboard creates the admin panel keyboard
func (h *MasterHandler) panelKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("📊 Stats", commands.MasterStats),
			markup.Data("🧹 Cleanup", commands.MasterCleanup),
		},
		telebot.Row{
			markup.Data("📢 Broadcast", commands.MasterBroadcast),
			markup.Data("👥 Users", commands.MasterUsers),
		},
		telebot.Row{
			markup.Data("⚙️ Settings", commands.MasterSettings),
			markup.Data("📋 Logs", commands.MasterLogs),
		},
	)
	return markup
}

// backKeyboard creates a keyboard returning to the panel
func (h *MasterHandler) backKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		telebot.Row{
			markup.Data("⬅️ Back to panel", commands.MasterPanel),
		},
	)
	return markup
}

// showPanel shows the admin panel menu
func (h *MasterHandler) showPanel(c telebot.Context) error {
	return h.sendTextMessage(c, "🛠 <b>Admin panel</b>\n\nWhat do you want to do?", h.panelKeyboard())
}

// showStats reports runtime and usage statistics
func (h *MasterHandler) showStats(c telebot.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	tempFiles, tempBytes := h.deps.Janitor.Stats()
	uptime := time.Since(h.startedAt).Round(time.Second)

	text := fmt.Sprintf("📊 <b>Statistics</b>\n\n"+
		"Uptime: %s\n"+
		"Known users: %d\n"+
		"Active sessions: %d\n"+
		"Temp files: %d (%.2f MB)\n"+
		"Memory in use: %.1f MB\n"+
		"Goroutines: %d",
		uptime,
		h.deps.Users.Count(),
		len(h.deps.Sessions.ActiveUsers()),
		tempFiles, float64(tempBytes)/1024/1024,
		float64(mem.Alloc)/1024/1024,
		runtime.NumGoroutine())

	return h.sendTextMessage(c, text, h.backKeyboard())
}

// runCleanup sweeps the temp directory immediately
func (h *MasterHandler) runCleanup(c telebot.Context) error {
	deleted, freed := h.deps.Janitor.SweepNow()
	return h.sendTextMessage(c,
		fmt.Sprintf("🧹 Cleanup done: %d files deleted, %.2f MB freed.", deleted, float64(freed)/1024/1024),
		h.backKeyboard())
}

// startBroadcast asks for the broadcast message
func (h *MasterHandler) startBroadcast(c telebot.Context) error {
	h.enterWorkflow(c.Sender().ID, models.StateAwaitingBroadcast, nil)
	return h.sendTextMessage(c,
		fmt.Sprintf("📢 Send me the message to broadcast to all %d known users.", h.deps.Users.Count()),
		h.backKeyboard())
}

// handleBroadcastInput delivers the broadcast to every known chat
func (h *MasterHandler) handleBroadcastInput(c telebot.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return h.sendTextMessage(c, "The broadcast message is empty, send it again.", nil)
	}

	h.deps.Sessions.Clear(userID)

	sent, failed := 0, 0
	for _, chatID := range h.deps.Users.ChatIDs() {
		if err := h.deps.Notifier.Notify(chatID, text); err != nil {
			h.deps.Logger.Warnf("Broadcast to chat %d failed: %v", chatID, err)
			failed++
			continue
		}
		sent++
	}

	h.deps.Logger.Infof("Broadcast by master %d: %d delivered, %d failed", userID, sent, failed)
	return h.sendTextMessage(c,
		fmt.Sprintf("📢 Broadcast finished: %d delivered, %d failed.", sent, failed),
		h.panelKeyboard())
}

// showUsers reports the known user base
func (h *MasterHandler) showUsers(c telebot.Context) error {
	ids := h.deps.Users.ChatIDs()

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Users</b>\n\nKnown chats: %d\n", len(ids))

	shown := len(ids)
	if shown > 20 {
		shown = 20
	}
	for _, id := range ids[:shown] {
		fmt.Fprintf(&sb, "• <code>%d</code>\n", id)
	}
	if len(ids) > shown {
		fmt.Fprintf(&sb, "... and %d more", len(ids)-shown)
	}

	return h.sendTextMessage(c, sb.String(), h.backKeyboard())
}

// showSettings reports the effective configuration
func (h *MasterHandler) showSettings(c telebot.Context) error {
	cfg := h.deps.Config

	aiStatus := "disabled"
	if h.deps.Enhancer.Available() {
		aiStatus = fmt.Sprintf("enabled (%s)", cfg.AI.Model)
	}

	text := fmt.Sprintf("⚙️ <b>Settings</b>\n\n"+
		"AI enhancement: %s\n"+
		"Temp directory: <code>%s</code>\n"+
		"Cleanup: every %dh, max age %dh\n"+
		"HTTP port: %d\n"+
		"Log level: %s",
		aiStatus,
		cfg.TempDir,
		cfg.Cleanup.IntervalHours, cfg.Cleanup.MaxAgeHours,
		cfg.HTTPPort,
		cfg.LogLevel)

	return h.sendTextMessage(c, text, h.backKeyboard())
}

// showLogs reports where logs go; they are written to stdout, not retained
func (h *MasterHandler) showLogs(c telebot.Context) error {
	text := fmt.Sprintf("📋 <b>Logs</b>\n\n"+
		"Logs are written to stdout at level <b>%s</b>.\n"+
		"Use your process supervisor to read them.",
		h.deps.Config.LogLevel)

	return h.sendTextMessage(c, text, h.backKeyboard())
}
