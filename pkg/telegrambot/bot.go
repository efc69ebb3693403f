package telegrambot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/config"
	"docusmith/internal/dispatch"
	"docusmith/internal/handlers"
	"docusmith/internal/permissions"
	"docusmith/internal/services"
)

// Bot represents the Telegram bot
type Bot struct {
	bot        *telebot.Bot
	config     *config.Config
	handlers   map[permissions.AccessType]handlers.MessageHandler
	dispatcher *dispatch.Dispatcher
	registry   *services.UserRegistry
	permCtrl   *permissions.Controller
	logger     *logrus.Logger
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg *config.Config,
	deps handlers.Deps,
	dispatcher *dispatch.Dispatcher,
	registry *services.UserRegistry,
	permCtrl *permissions.Controller,
	logger *logrus.Logger,
) (*Bot, error) {
	settings := telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
			if c != nil {
				c.Send("An error occurred. Please try again later.")
			}
		},
	}

	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	// Broadcasts are delivered through the bot itself
	deps.Notifier = &botNotifier{bot: b}

	factory := handlers.NewHandlerFactory(deps)

	bot := &Bot{
		bot:        b,
		config:     cfg,
		handlers:   make(map[permissions.AccessType]handlers.MessageHandler),
		dispatcher: dispatcher,
		registry:   registry,
		permCtrl:   permCtrl,
		logger:     logger,
	}

	bot.handlers[permissions.Master] = factory.CreateHandler(permissions.Master)
	bot.handlers[permissions.User] = factory.CreateHandler(permissions.User)

	bot.setupMiddleware()

	return bot, nil
}

// Username returns the bot's username as reported by Telegram
func (b *Bot) Username() string {
	if b.bot.Me != nil && b.bot.Me.Username != "" {
		return b.bot.Me.Username
	}
	return b.config.Telegram.Username
}

// Start starts the bot and blocks until the context is canceled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting Telegram bot")

	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

// setupMiddleware sets up the bot middleware and update routing
func (b *Bot) setupMiddleware() {
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if sender := c.Sender(); sender != nil {
				b.logger.Debugf("Received update from %d", sender.ID)
				if err := b.registry.Track(sender.ID); err != nil {
					b.logger.Warnf("Failed to track user %d: %v", sender.ID, err)
				}
			}
			return next(c)
		}
	})

	b.bot.Handle(telebot.OnText, b.handleUpdate)
	b.bot.Handle(telebot.OnCallback, b.handleUpdate)
	b.bot.Handle(telebot.OnPhoto, b.handleUpdate)
	b.bot.Handle(telebot.OnDocument, b.handleUpdate)
}

// handleUpdate enqueues an update on the sender's dispatch queue. Updates
// from one user run in arrival order; different users run concurrently.
func (b *Bot) handleUpdate(c telebot.Context) error {
	userID := c.Sender().ID

	accessType := b.permCtrl.GetAccessType(userID)
	handler, ok := b.handlers[accessType]
	if !ok {
		b.logger.Warnf("No handler for access type %d", accessType)
		return c.Send("You don't have permission to use this bot.")
	}

	b.dispatcher.Dispatch(userID, func() {
		if err := handler.Handle(context.Background(), c); err != nil {
			b.logger.Errorf("Update from user %d failed: %v", userID, err)
		}
	})
	return nil
}

// botNotifier delivers out-of-band messages through the bot connection
type botNotifier struct {
	bot *telebot.Bot
}

// Notify implements handlers.Notifier
func (n *botNotifier) Notify(chatID int64, text string) error {
	_, err := n.bot.Send(&telebot.Chat{ID: chatID}, text)
	return err
}
