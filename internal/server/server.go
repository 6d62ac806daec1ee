package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lifelog/internal/bot"
	"lifelog/internal/config"
	"lifelog/internal/logger"
	"lifelog/internal/repository"
)

// Server exposes the HTTP surface: health, metrics and the Telegram
// webhook endpoint.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	bot    *bot.Bot
	log    *logger.Logger
}

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, b *bot.Bot, log *logger.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		db:     db,
		rdb:    rdb,
		bot:    b,
		log:    log.With("service", "http"),
	}

	s.engine.Use(gin.Recovery())
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.BotMode == config.ModeWebhook {
		s.engine.POST("/webhook/:secret", s.webhook)
	}

	return s
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("http server listening", "addr", s.cfg.HTTPAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) healthz(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "down"})
		return
	}
	if s.rdb != nil {
		if err := repository.PingRedis(c.Request.Context(), s.rdb); err != nil {
			status["redis"] = "down"
		}
	}

	c.JSON(http.StatusOK, status)
}

// webhook receives a Telegram update. The reply to the user goes out
// through the bot API, not this response, so Telegram just gets a 200.
func (s *Server) webhook(c *gin.Context) {
	secret := c.Param("secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.WebhookSecret)) != 1 {
		c.Status(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.log.Warn("bad webhook payload", "error", err.Error())
		c.Status(http.StatusBadRequest)
		return
	}

	go s.bot.HandleUpdate(context.Background(), update)
	c.Status(http.StatusOK)
}
