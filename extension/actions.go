package extension

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/callpoint/model/types"
	"go.uber.org/zap"
)

// Actions provides call point registry
type Actions struct {
	handlers map[string]types.Handler
	logger   *zap.Logger
	mux      sync.RWMutex
}

// Lookup returns a handler by call point
func (s *Actions) Lookup(callPoint string) types.Handler {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.handlers[callPoint]
}

// Register runs the handler init hook and binds the handler to its call point.
// Init runs outside the registry lock so it may use the registry.
func (s *Actions) Register(ctx context.Context, trans types.Trans, handler types.Handler) error {
	callPoint := handler.CallPoint()
	if s.Lookup(callPoint) != nil {
		return types.NewDuplicateCallPointError(callPoint)
	}
	if err := initHandler(ctx, trans, handler); err != nil {
		s.logger.Warn("init failed", zap.String("callPoint", callPoint), zap.Error(err))
		return err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.handlers[callPoint]; ok {
		return types.NewDuplicateCallPointError(callPoint)
	}
	s.handlers[callPoint] = handler
	s.logger.Debug("registered", zap.String("callPoint", callPoint))
	return nil
}

func initHandler(ctx context.Context, trans types.Trans, handler types.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.NewPanicError(handler.CallPoint(), "init failed", r)
		}
	}()
	if err = handler.Init(ctx, trans); err != nil {
		return types.NewCallbackError(handler.CallPoint(), "init failed", err)
	}
	return nil
}

// Unregister removes call point binding
func (s *Actions) Unregister(callPoint string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.handlers, callPoint)
}

// CallPoints returns sorted registered call points
func (s *Actions) CallPoints() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.handlers))
	for callPoint := range s.handlers {
		ret = append(ret, callPoint)
	}
	sort.Strings(ret)
	return ret
}

// NewActions creates a new call point registry
func NewActions(options ...Option) *Actions {
	ret := &Actions{
		handlers: make(map[string]types.Handler),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
