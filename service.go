package callpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/callpoint/extension"
	"github.com/viant/callpoint/internal/logger"
	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/service/action/decrypt"
	"github.com/viant/callpoint/service/action/greeting"
	"github.com/viant/callpoint/service/cdb"
	"github.com/viant/callpoint/service/crypto"
	"github.com/viant/callpoint/service/executor"
	"github.com/viant/callpoint/service/nsocli"
	"github.com/viant/callpoint/tracing"
	"go.uber.org/zap"
)

// builtins maps call point names to handler constructors
var builtins = map[string]func(cfg *Config) (types.Handler, error){
	greeting.JavaCallPoint: func(cfg *Config) (types.Handler, error) {
		return greeting.NewJava(), nil
	},
	greeting.PythonCallPoint: func(cfg *Config) (types.Handler, error) {
		return greeting.NewPython(), nil
	},
	greeting.PyvenvCallPoint: func(cfg *Config) (types.Handler, error) {
		return greeting.NewPyvenv(), nil
	},
	decrypt.CallPoint: func(cfg *Config) (types.Handler, error) {
		keys, err := crypto.New(cfg.Crypto.Key)
		if err != nil {
			return nil, err
		}
		return decrypt.New(keys), nil
	},
}

// Service hosts action handlers bound to call points
type Service struct {
	config   *Config
	logger   *zap.Logger
	actions  *extension.Actions
	executor executor.Service
	cdb      *cdb.Service
	cli      *nsocli.Service
	handlers []types.Handler
	listener executor.Listener
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		s.logger = logger.New(s.config.Logging.Level, logger.Format(s.config.Logging.Format), nil)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.cdb == nil {
		s.cdb = cdb.New(nil)
	}
	s.actions = extension.NewActions(extension.WithLogger(logger.For(s.logger, logger.ComponentRegistry)))
	s.executor = executor.NewService(s.actions,
		executor.WithLogger(logger.For(s.logger, logger.ComponentExecutor)),
		executor.WithListener(s.listener))
	s.cli = nsocli.New(nsocli.WithLogger(logger.For(s.logger, logger.ComponentCLI)))

	for _, callPoint := range s.config.CallPoints {
		handler, err := builtins[callPoint](s.config)
		if err != nil {
			return fmt.Errorf("failed to create %v handler: %w", callPoint, err)
		}
		if err = s.Register(ctx, handler); err != nil {
			return err
		}
	}
	for _, handler := range s.handlers {
		if err := s.Register(ctx, handler); err != nil {
			return err
		}
	}
	return nil
}

// Register binds handler to its call point after running its init hook
func (s *Service) Register(ctx context.Context, handler types.Handler) error {
	if err := s.actions.Register(ctx, s.cdb.NewTrans(ctx), handler); err != nil {
		return fmt.Errorf("failed to register %v: %w", handler.CallPoint(), err)
	}
	s.logger.Info("action handler registered", zap.String("callPoint", handler.CallPoint()))
	return nil
}

// Invoke routes an action to the handler registered for callPoint. A nil trans opens a new one.
func (s *Service) Invoke(ctx context.Context, trans types.Trans, callPoint, action string, kp types.KeyPath, params []types.Param) ([]types.Param, error) {
	if trans == nil {
		trans = s.cdb.NewTrans(ctx)
	}
	return s.executor.Execute(ctx, &types.Invocation{
		CallPoint: callPoint,
		Name:      action,
		KeyPath:   kp,
		Params:    params,
		Trans:     trans,
	})
}

// CallPoints returns registered call points
func (s *Service) CallPoints() []string {
	return s.actions.CallPoints()
}

// CDB returns the configuration database
func (s *Service) CDB() *cdb.Service {
	return s.cdb
}

// NewTrans opens a transaction handle
func (s *Service) NewTrans(ctx context.Context) *cdb.Trans {
	return s.cdb.NewTrans(ctx)
}

// CLI returns the NSO CLI runner configured with CLI defaults
func (s *Service) CLI() *nsocli.Service {
	return s.cli
}

// CLIInput returns a CLI input prefilled from config
func (s *Service) CLIInput(command string) *nsocli.Input {
	return &nsocli.Input{
		Container:     s.config.CLI.Container,
		Command:       command,
		TimeLimit:     s.config.CLI.TimeLimit,
		RetryInterval: s.config.CLI.RetryInterval,
	}
}

// Close releases shell sessions and flushes traces
func (s *Service) Close(ctx context.Context) error {
	err := errors.Join(s.cli.Close(), tracing.Shutdown(ctx))
	_ = s.logger.Sync()
	return err
}

// New creates a service and registers configured call points
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
