package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docusmith/internal/config"
	"docusmith/internal/services"
)

// BotInfo exposes what the landing page needs to know about the bot
type BotInfo interface {
	Username() string
}

// Server is the HTTP side of the bot: a landing page with a QR code
// pointing at the chat, plus health and status endpoints for monitoring.
type Server struct {
	srv       *http.Server
	qrService *services.QRService
	bot       BotInfo
	startedAt time.Time
	logger    *logrus.Logger
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, qrService *services.QRService, bot BotInfo, logger *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		qrService: qrService,
		bot:       bot,
		startedAt: time.Now(),
		logger:    logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)
	router.GET("/webhook", s.handleWebhookInfo)
	router.GET("/qr", s.handleQR)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	return s
}

// Run serves HTTP until the context is canceled
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Infof("Web server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

// botLink returns the t.me deep link for the bot
func (s *Server) botLink() string {
	return "https://t.me/" + s.bot.Username()
}

// handleIndex serves the landing page
func (s *Server) handleIndex(c *gin.Context) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>PDF Bot</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    body { font-family: sans-serif; max-width: 600px; margin: 40px auto; padding: 0 16px; }
    img { display: block; margin: 24px auto; }
    a.button { display: inline-block; background: #2ea6ff; color: #fff; padding: 10px 20px;
               border-radius: 6px; text-decoration: none; }
  </style>
</head>
<body>
  <h1>📄 PDF Bot</h1>
  <p>Convert text, images and documents to PDF, merge, split and protect PDFs, right in Telegram.</p>
  <img src="/qr" alt="QR code" width="256" height="256">
  <p style="text-align:center"><a class="button" href="%s">Open in Telegram</a></p>
</body>
</html>`, s.botLink())

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// handleHealth serves the liveness probe
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleWebhookInfo reports how updates are received. The bot long-polls,
// so there is no webhook to register; the endpoint exists for monitoring.
func (s *Server) handleWebhookInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bot":    s.bot.Username(),
		"mode":   "long-polling",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleQR serves a QR code pointing at the bot chat
func (s *Server) handleQR(c *gin.Context) {
	png, err := s.qrService.GenerateQR(s.botLink())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
