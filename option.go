package callpoint

import (
	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/service/cdb"
	"github.com/viant/callpoint/service/executor"
	"go.uber.org/zap"
)

// Option represents service option
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithLogger sets the base logger, overriding config logging settings
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHandlers registers additional handlers after the configured ones
func WithHandlers(handlers ...types.Handler) Option {
	return func(s *Service) {
		s.handlers = append(s.handlers, handlers...)
	}
}

// WithListener observes every invocation
func WithListener(listener executor.Listener) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithCDB sets the configuration database
func WithCDB(db *cdb.Service) Option {
	return func(s *Service) {
		s.cdb = db
	}
}
