package nsocli

import "go.uber.org/zap"

type Option func(*Service)

// WithRunner replaces the local gosh shell
func WithRunner(r Runner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

func WithReporter(r Reporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
