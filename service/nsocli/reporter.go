package nsocli

import (
	"time"

	"go.uber.org/zap"
)

// Reporter receives progress of a command run
type Reporter interface {
	Executing(command string)
	Success(output string, elapsed time.Duration)
	Failure(output string, elapsed time.Duration)
	Retrying(elapsed time.Duration)
}

type logReporter struct {
	logger *zap.Logger
}

func (r *logReporter) Executing(command string) {
	r.logger.Info("executing", zap.String("command", command))
}

func (r *logReporter) Success(output string, elapsed time.Duration) {
	r.logger.Info("command succeeded", zap.Duration("elapsed", elapsed), zap.String("output", output))
}

func (r *logReporter) Failure(output string, elapsed time.Duration) {
	r.logger.Warn("command failed", zap.Duration("elapsed", elapsed), zap.String("output", output))
}

func (r *logReporter) Retrying(elapsed time.Duration) {
	r.logger.Info("retrying, no more output until result changes", zap.Duration("elapsed", elapsed))
}

// NewLogReporter reports through logger
func NewLogReporter(logger *zap.Logger) Reporter {
	return &logReporter{logger: logger}
}
