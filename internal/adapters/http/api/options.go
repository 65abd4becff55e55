package api

import (
	"time"

	"github.com/okian/fog/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrefix mounts the admin routes under prefix.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLatency delays every admin response by d. Zero disables the delay.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.latency = d
		}
	}
}

// WithRateLimit caps requests per second per client IP. Zero disables it.
func WithRateLimit(perSecond int) Option {
	return func(s *Server) {
		if perSecond >= 0 {
			s.rateLimit = perSecond
		}
	}
}

// WithCORSOrigins sets the origins allowed by CORS.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}
