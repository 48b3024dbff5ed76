// Package config provides centralized timeout constants for the application.
//
// These values are tuned around LINE Messaging API constraints: reply
// tokens expire quickly, and LINE expects the webhook endpoint to respond
// within a few seconds, so everything on the synchronous path is kept
// short. The loading-indicator call gets the tightest budget of all since
// it is a pure UX nicety.
package config

import "time"

const (
	// WebhookHTTPRead is the HTTP server read timeout for webhook deliveries.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	WebhookHTTPWrite = 10 * time.Second

	// WebhookHTTPIdle is the HTTP server keep-alive idle timeout.
	WebhookHTTPIdle = 120 * time.Second

	// StoreRequest bounds a single Firestore operation on the request path.
	StoreRequest = 5 * time.Second

	// LoadingConnect is the connect budget for the loading-indicator call.
	LoadingConnect = 1 * time.Second

	// LoadingRequest is the total budget (connect + read) for one
	// loading-indicator attempt.
	LoadingRequest = 2500 * time.Millisecond

	// LoadingRetryBase is the initial backoff between loading-indicator
	// retry attempts; doubles per attempt.
	LoadingRetryBase = 100 * time.Millisecond
)
