// Package notifier shows the LINE typing indicator without blocking
// the webhook reply path. Tasks run on a small fixed worker pool and
// failures are logged and swallowed, never surfaced to the caller.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chungli-bot/house-linebot-go/internal/config"
	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
)

const defaultBaseURL = "https://api.line.me"

// Loading indicator durations accepted by the platform.
const (
	minSeconds  = 5
	maxSeconds  = 60
	stepSeconds = 5
)

// extra attempts after the first, on transient failures only
const maxRetries = 2

var transientStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type task struct {
	chatID  string
	seconds int
}

// Notifier posts chat loading-start requests from a bounded queue.
type Notifier struct {
	token     string
	baseURL   string
	retryBase time.Duration

	client  *http.Client
	queue   chan task
	wg      sync.WaitGroup
	once    sync.Once
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New starts cfg.LoadingWorkers workers draining a queue of
// cfg.LoadingQueueSize pending indicator requests.
func New(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *Notifier {
	n := &Notifier{
		token:     cfg.LineChannelToken,
		baseURL:   defaultBaseURL,
		retryBase: config.LoadingRetryBase,
		client: &http.Client{
			Timeout: config.LoadingRequest,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: config.LoadingConnect,
				}).DialContext,
				MaxIdleConnsPerHost: 10,
			},
		},
		queue:   make(chan task, cfg.LoadingQueueSize),
		log:     log.WithModule("notifier"),
		metrics: m,
	}

	workers := cfg.LoadingWorkers
	if workers <= 0 {
		workers = 2
	}
	for range workers {
		n.wg.Add(1)
		go n.worker()
	}
	return n
}

// Notify enqueues a loading indicator for chatID. It never blocks:
// when the queue is full the request is dropped with a warning.
func (n *Notifier) Notify(chatID string, seconds int) {
	if chatID == "" {
		return
	}

	select {
	case n.queue <- task{chatID: chatID, seconds: seconds}:
	default:
		n.log.WithError(apperrors.ErrQueueFull).WithField("chat_id", chatID).Warnf("dropping loading indicator")
		if n.metrics != nil {
			n.metrics.RecordNotifierTask("dropped")
		}
	}
}

// Shutdown stops accepting work and waits for in-flight tasks, up to
// the context deadline.
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.once.Do(func() { close(n.queue) })

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for t := range n.queue {
		n.post(t)
	}
}

func (n *Notifier) post(t task) {
	payload, err := json.Marshal(map[string]any{
		"chatId":         t.chatID,
		"loadingSeconds": ClampSeconds(t.seconds),
	})
	if err != nil {
		n.log.WithError(err).Errorf("marshal loading payload")
		return
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(n.retryBase << (attempt - 1))
		}

		status, err := n.attempt(payload)
		if err != nil {
			n.log.WithError(err).WithField("chat_id", t.chatID).Warnf("loading indicator attempt failed")
			if n.metrics != nil {
				n.metrics.RecordNotifierAttempt("network_error")
			}
			continue
		}

		if n.metrics != nil {
			n.metrics.RecordNotifierAttempt(statusClass(status))
		}
		if status < 200 || status >= 300 {
			n.log.WithFields(map[string]any{"chat_id": t.chatID, "status": status}).Warnf("loading indicator rejected")
		}
		if !transientStatus[status] {
			if n.metrics != nil {
				if status >= 200 && status < 300 {
					n.metrics.RecordNotifierTask("sent")
				} else {
					n.metrics.RecordNotifierTask("failed")
				}
			}
			return
		}
	}

	n.log.WithField("chat_id", t.chatID).Warnf("loading indicator gave up after retries")
	if n.metrics != nil {
		n.metrics.RecordNotifierTask("failed")
	}
}

func (n *Notifier) attempt(payload []byte) (int, error) {
	req, err := http.NewRequest(http.MethodPost, n.baseURL+"/v2/bot/chat/loading/start", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// ClampSeconds normalizes a duration hint to the platform-accepted
// range of 5 to 60 seconds in multiples of 5. Zero or negative hints
// fall back to the minimum.
func ClampSeconds(seconds int) int {
	if seconds <= 0 {
		seconds = minSeconds
	}
	s := int(math.Round(float64(seconds)/stepSeconds)) * stepSeconds
	if s < minSeconds {
		s = minSeconds
	}
	if s > maxSeconds {
		s = maxSeconds
	}
	return s
}

func statusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return fmt.Sprintf("%d", status)
	}
}
