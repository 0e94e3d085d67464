package jupiter

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RoundTripFunc sends one HTTP request and returns its response.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// Middleware wraps a RoundTripFunc. Middlewares run in registration order on
// the way out and unwind in reverse on the way back; one may short-circuit by
// returning without calling next, as long as it honors the (response, error)
// contract.
type Middleware func(next RoundTripFunc) RoundTripFunc

// APIKeyMiddleware injects the service API key on every request.
func APIKeyMiddleware(key string) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			if key != "" {
				req.Header.Set("x-api-key", key)
			}
			return next(req)
		}
	}
}

// RequestLoggingMiddleware logs method, URL, status and duration of every
// exchange.
func RequestLoggingMiddleware(logger *logrus.Logger) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			res, err := next(req)

			fields := logrus.Fields{
				"method":   req.Method,
				"url":      req.URL.String(),
				"duration": time.Since(start),
			}
			if err != nil {
				logger.WithFields(fields).WithError(err).Warn("request failed")
				return nil, err
			}
			logger.WithFields(fields).WithField("status", res.StatusCode).Debug("request completed")
			return res, nil
		}
	}
}

// RateLimitMiddleware blocks until the limiter grants a slot, honoring the
// request context.
func RateLimitMiddleware(limiter *rate.Limiter) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, err
			}
			return next(req)
		}
	}
}
