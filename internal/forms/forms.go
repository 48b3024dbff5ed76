// Package forms serves the LIFF form submission endpoints: subscription
// conditions, listing search, and viewing bookings. Each endpoint
// validates its payload, writes through the store, and pushes the
// resulting LINE messages.
package forms

import (
	"github.com/gin-gonic/gin"

	"github.com/chungli-bot/house-linebot-go/internal/bot"
	"github.com/chungli-bot/house-linebot-go/internal/config"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
	"github.com/chungli-bot/house-linebot-go/internal/store"
)

// Handlers serves the form submission endpoints.
type Handlers struct {
	store   store.Store
	client  bot.Messenger
	cfg     *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// HandlersConfig holds configuration for creating form handlers.
type HandlersConfig struct {
	Store   store.Store
	Client  bot.Messenger
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// New creates the form endpoint handlers.
func New(cfg HandlersConfig) *Handlers {
	return &Handlers{
		store:   cfg.Store,
		client:  cfg.Client,
		cfg:     cfg.Config,
		logger:  cfg.Logger.WithModule("forms"),
		metrics: cfg.Metrics,
	}
}

// Register mounts the form endpoints on the router.
func (h *Handlers) Register(router gin.IRouter) {
	router.POST("/submit_form", h.SubmitForm)
	router.POST("/submit_search", h.SubmitSearch)
	router.POST("/api/booking", h.SubmitBooking)
}

// statusResponse is the JSON envelope shared by all form endpoints.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *Handlers) respond(c *gin.Context, endpoint string, code int, resp statusResponse) {
	h.metrics.RecordFormSubmission(endpoint, resp.Status)
	c.JSON(code, resp)
}
