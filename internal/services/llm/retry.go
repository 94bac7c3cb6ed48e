package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// retryPolicy decides whether a failed plan-generation attempt is worth
// repeating and how long to pause before the next one.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleeper     func(time.Duration)
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: defaultRetryAttempts,
		baseDelay:   defaultRetryBaseDelay,
		maxDelay:    defaultRetryMaxDelay,
	}
}

// apiStatusError carries a non-success provider response.
type apiStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *apiStatusError) Error() string {
	return fmt.Sprintf("llm request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// blankReplyError marks a well-formed response that carried no usable
// content. Providers produce these intermittently; a fresh attempt usually
// clears them.
type blankReplyError struct {
	Op           string
	FinishReason string
	Refusal      string
	Snippet      string
}

func (e *blankReplyError) Error() string {
	return fmt.Sprintf("%s: blank completion (finish_reason=%q, refusal=%q, response_snippet=%s)",
		e.Op, e.FinishReason, e.Refusal, e.Snippet)
}

func (c *Client) completeWithRetry(ctx context.Context, payload chatCompletionRequest, op string) (string, error) {
	attempts := c.retry.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := c.attemptCompletion(ctx, payload, op)
		if err == nil {
			return content, nil
		}
		lastErr = err

		delay, retry := c.retry.next(ctx, err, attempt)
		if !retry {
			return "", err
		}
		if sleepErr := c.retry.wait(ctx, delay); sleepErr != nil {
			return "", sleepErr
		}
	}
	return "", fmt.Errorf("%s: gave up after %d attempts: %w", op, attempts, lastErr)
}

func (c *Client) attemptCompletion(ctx context.Context, payload chatCompletionRequest, op string) (string, error) {
	completion, body, err := c.send(ctx, payload)
	if err != nil {
		return "", err
	}
	content, finishReason := extractContent(completion)
	if content != "" {
		return content, nil
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s: empty choices", op)
	}
	return "", &blankReplyError{
		Op:           op,
		FinishReason: finishReason,
		Refusal:      extractRefusal(completion),
		Snippet:      payloadSnippet(string(body)),
	}
}

func (p retryPolicy) attempts() int {
	if p.maxAttempts <= 0 {
		return 1
	}
	return p.maxAttempts
}

// next classifies err and returns the pause before another attempt. A false
// second return means the error is terminal for this request.
func (p retryPolicy) next(ctx context.Context, err error, attempt int) (time.Duration, bool) {
	if attempt >= p.attempts() || err == nil || ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var blank *blankReplyError
	if errors.As(err, &blank) {
		return p.backoff(attempt), true
	}

	var status *apiStatusError
	if errors.As(err, &status) {
		if !retryableStatus(status.StatusCode) {
			return 0, false
		}
		if status.RetryAfter > 0 {
			return p.clamp(status.RetryAfter), true
		}
		return p.backoff(attempt), true
	}

	if isTimeout(err) {
		return p.backoff(attempt), true
	}
	return 0, false
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// backoff doubles the base delay per prior attempt, capped at maxDelay.
func (p retryPolicy) backoff(attempt int) time.Duration {
	if p.baseDelay <= 0 {
		return 0
	}
	delay := p.baseDelay
	limit := p.limit()
	for ; attempt > 1 && delay < limit; attempt-- {
		delay *= 2
	}
	return p.clamp(delay)
}

func (p retryPolicy) limit() time.Duration {
	if p.maxDelay > 0 {
		return p.maxDelay
	}
	return defaultRetryMaxDelay
}

func (p retryPolicy) clamp(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	if limit := p.limit(); delay > limit {
		return limit
	}
	return delay
}

func (p retryPolicy) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.sleeper != nil {
		p.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads a Retry-After header as delta-seconds or an HTTP
// date.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	when, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	if delay := time.Until(when); delay > 0 {
		return delay, true
	}
	return 0, false
}
