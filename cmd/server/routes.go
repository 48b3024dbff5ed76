package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chungli-bot/house-linebot-go/internal/bot"
	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/forms"
	"github.com/chungli-bot/house-linebot-go/internal/lineutil"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/store"
	"github.com/chungli-bot/house-linebot-go/internal/webhook"
)

type routeDeps struct {
	cfg      *config.Config
	store    store.Store
	client   bot.Messenger
	webhook  *webhook.Handler
	forms    *forms.Handlers
	registry *prometheus.Registry
	logger   *logger.Logger
}

// setupRoutes configures all HTTP routes.
func setupRoutes(router *gin.Engine, deps routeDeps) {
	rootHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "LINE Bot is running.")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probes. Uptime monitors hit /health, orchestrators /healthz.
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	// Readiness probe checks the store connection.
	router.GET("/ready", func(c *gin.Context) {
		if err := deps.store.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": "connected"})
	})

	// LINE webhook callback endpoint.
	router.POST("/callback", deps.webhook.Handle)

	// LIFF form submission endpoints.
	deps.forms.Register(router)

	// Prometheus metrics endpoint, behind basic auth when configured.
	metricsHandler := gin.WrapH(promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	if deps.cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			deps.cfg.MetricsUsername: deps.cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}

	setupDebugRoutes(router, deps)
}

// setupDebugRoutes mounts operator-facing smoke test endpoints.
func setupDebugRoutes(router *gin.Engine, deps routeDeps) {
	router.GET("/debug/agent", func(c *gin.Context) {
		if deps.cfg.AgentUserID == "" {
			c.String(http.StatusOK, "❌ 沒有讀到 AGENT_LINE_USER_ID，請檢查 .env")
			return
		}
		c.String(http.StatusOK, "✅ AGENT_LINE_USER_ID = %s", deps.cfg.AgentUserID)
	})

	router.GET("/debug/push/:userID", func(c *gin.Context) {
		userID := c.Param("userID")
		if _, err := deps.client.PushMessage(&messaging_api.PushMessageRequest{
			To:       userID,
			Messages: []messaging_api.MessageInterface{lineutil.NewTextMessage("✅ 測試 Push 成功！")},
		}, ""); err != nil {
			deps.logger.WithError(err).WithField("user_id", userID).Error("Debug push failed")
			c.String(http.StatusInternalServerError, "❌ Push 失敗: %v", err)
			return
		}
		c.String(http.StatusOK, "ok")
	})
}
