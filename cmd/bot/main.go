package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"docusmith/internal/config"
	"docusmith/internal/dispatch"
	"docusmith/internal/handlers"
	"docusmith/internal/permissions"
	"docusmith/internal/services"
	"docusmith/internal/telegram"
	"docusmith/internal/webserver"
	"docusmith/pkg/telegrambot"
)

func main() {
	// Local development reads .env; in production the variables are set
	// by the environment
	_ = godotenv.Load()

	logger := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}

	// Initialize services
	sessionService := services.NewSessionService(logger)
	renderService := services.NewRenderService(cfg.TempDir, logger)
	pdfService := services.NewPDFService(cfg.TempDir, logger)
	convertService := services.NewConvertService(renderService, logger)
	ocrService := services.NewOCRService(logger)
	enhanceService := services.NewEnhanceService(cfg.AI, logger)
	qrService := services.NewQRService(logger)
	cleanupService := services.NewCleanupService(cfg.TempDir, cfg.Cleanup.MaxAgeHours, cfg.Cleanup.IntervalHours, logger)
	registry := services.NewUserRegistry(cfg.Cleanup.UsersFile, logger)
	fileClient := telegram.NewFileClient(cfg.Telegram.Token, cfg.TempDir, logger)

	permCtrl := permissions.NewController(cfg.Master.ID, cfg.Master.Password, logger)
	dispatcher := dispatch.NewDispatcher(logger)

	deps := handlers.Deps{
		Sessions:    sessionService,
		Permissions: permCtrl,
		Renderer:    renderService,
		PDF:         pdfService,
		Converter:   convertService,
		OCR:         ocrService,
		Enhancer:    enhanceService,
		Downloader:  fileClient,
		Janitor:     cleanupService,
		Users:       registry,
		Config:      cfg,
		Logger:      logger,
	}

	bot, err := telegrambot.NewBot(cfg, deps, dispatcher, registry, permCtrl, logger)
	if err != nil {
		logger.Fatal("Failed to create bot: ", err)
	}

	web := webserver.NewServer(cfg, qrService, bot, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	go cleanupService.Run(ctx)

	go func() {
		if err := web.Run(ctx); err != nil {
			logger.Errorf("Web server failed: %v", err)
			cancel()
		}
	}()

	logger.Info("Starting PDF bot")
	if err := bot.Start(ctx); err != nil {
		logger.Fatal("Bot failed: ", err)
	}

	// Finish in-flight updates before exiting
	dispatcher.Stop()
}

// setupLogger sets up the logger
func setupLogger() *logrus.Logger {
	logger := logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
