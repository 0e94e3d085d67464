package jupiter

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds QuoteWithRetry: a fixed number of attempts with a fixed
// delay between them.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the service's suggested client behavior.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 2 * time.Second}

// retryable reports whether an attempt is worth repeating. Status and
// transport failures are; a body that fails to decode will fail the same way
// every time.
func retryable(err error) bool {
	var decodeErr *DecodeResponseError
	if errors.As(err, &decodeErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// QuoteWithRetry is Quote with the client's retry policy applied. Quote is
// read-only and idempotent, so repeating it is safe; swap and
// swap-instructions are deliberately excluded since the service does not
// guarantee idempotency for them. The last attempt's error is returned
// verbatim when all attempts are exhausted.
func (c *Client) QuoteWithRetry(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	policy := c.retry
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		res, err := c.Quote(ctx, req)
		if err == nil {
			return res, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt < policy.MaxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(policy.Delay):
			}
		}
	}
	return nil, lastErr
}
