package executor

import (
	"context"
	"time"

	"github.com/viant/callpoint/extension"
	"github.com/viant/callpoint/internal/clock"
	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/tracing"
	"go.uber.org/zap"
)

// Listener is invoked once a handler completes, regardless of whether it returned an error.
type Listener func(invocation *types.Invocation, output []types.Param, err error, elapsed time.Duration)

// Option is used to customise the executor instance.
type Option func(*service)

// WithListener sets the listener invoked after every invocation. Passing nil disables it.
func WithListener(l Listener) Option {
	return func(s *service) {
		s.listener = l
	}
}

// WithLogger sets executor logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service represents an invocation executor.
type Service interface {
	Execute(ctx context.Context, invocation *types.Invocation) ([]types.Param, error)
}

type service struct {
	actions  *extension.Actions
	listener Listener
	logger   *zap.Logger
}

// Execute runs the handler registered for invocation.CallPoint.
func (s *service) Execute(ctx context.Context, invocation *types.Invocation) (output []types.Param, err error) {
	if invocation == nil {
		return nil, ErrNilInvocation
	}
	handler := s.actions.Lookup(invocation.CallPoint)
	if handler == nil {
		return nil, types.NewCallPointNotFoundError(invocation.CallPoint)
	}
	ctx, span := tracing.StartInvocation(ctx, invocation.CallPoint, invocation.Name)
	started := clock.Now()
	defer func() {
		elapsed := clock.Since(started)
		tracing.EndSpan(span, err)
		fields := []zap.Field{
			zap.String("callPoint", invocation.CallPoint),
			zap.String("action", invocation.Name),
			zap.Duration("elapsed", elapsed),
		}
		if invocation.Trans != nil {
			fields = append(fields, zap.String("trans", invocation.Trans.ID()))
		}
		if err != nil {
			s.logger.Warn("action failed", append(fields, zap.Error(err))...)
		} else {
			s.logger.Debug("action completed", append(fields, zap.Int("params", len(output)))...)
		}
		if s.listener != nil {
			s.listener(invocation, output, err, elapsed)
		}
	}()
	return s.invoke(ctx, handler, invocation)
}

func (s *service) invoke(ctx context.Context, handler types.Handler, invocation *types.Invocation) (output []types.Param, err error) {
	defer func() {
		if r := recover(); r != nil {
			output, err = nil, types.NewPanicError(invocation.CallPoint, "", r)
		}
	}()
	output, err = handler.Invoke(ctx, invocation.Trans, invocation.Name, invocation.KeyPath, invocation.Params)
	if err != nil {
		return nil, types.NewCallbackError(invocation.CallPoint, "", err)
	}
	return output, nil
}

// NewService creates a new executor service instance.
func NewService(actions *extension.Actions, opts ...Option) Service {
	s := &service{
		actions: actions,
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
