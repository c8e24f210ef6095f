package video

import "github.com/kmmndr/movement_detector/internal/logger"

type options struct {
	log  logger.Logger
	open opener
}

type Option func(*options)

// WithLogger sets the logger a Source reports to. The default discards.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func withBackend(open opener) Option {
	return func(o *options) {
		o.open = open
	}
}
