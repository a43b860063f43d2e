package extension

import "go.uber.org/zap"

type Option func(*Actions)

// WithLogger sets registry logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Actions) {
		if logger != nil {
			a.logger = logger
		}
	}
}
