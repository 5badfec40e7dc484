package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/shared/util"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base      Client
	attempts  int
	baseDelay time.Duration
}

// WithRetries wraps base so transient transport failures are retried up to
// retries extra times with exponential backoff. retries <= 0 returns base.
func WithRetries(base Client, retries int) Client {
	if base == nil || retries <= 0 {
		return base
	}
	return &retryingClient{base: base, attempts: retries, baseDelay: retryBaseDelay}
}

func (r *retryingClient) ExtractProfile(ctx context.Context, input ExtractInput) (string, error) {
	raw, err := r.base.ExtractProfile(ctx, input)
	delay := r.baseDelay
	for attempt := 1; attempt <= r.attempts && err != nil && ShouldRetry(err); attempt++ {
		telemetry.Info("llm.retry", map[string]any{
			"attempt": attempt,
			"delay":   delay.String(),
			"error":   util.SanitizeError(err),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
		raw, err = r.base.ExtractProfile(ctx, input)
	}
	return raw, err
}

// ShouldRetry reports whether err looks like a transient provider failure.
// Cancellation by the caller is never retried.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "http status 429") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "gemini") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof")
}
