package nsocli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/viant/callpoint/internal/clock"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	"go.uber.org/zap"
)

// StopOnErrorStatus is the ncs_cli --stop-on-error exit code for syntax and application errors
const StopOnErrorStatus = 8

var (
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
	ErrContainerNotFound = errors.New("no such NSO container")

	errAttemptFailed       = errors.New("attempt failed")
	errFailPatternMatched  = errors.New("fail pattern matched")
	noSuchContainerPattern = regexp.MustCompile(`(?m)No such container`)
)

// Runner executes a shell command, *gosh.Service satisfies it
type Runner interface {
	Run(ctx context.Context, command string, options ...runner.Option) (string, int, error)
}

// Service runs commands against NSO CLI
type Service struct {
	runner   Runner
	closer   func() error
	reporter Reporter
	logger   *zap.Logger
	mux      sync.Mutex
}

// Run executes the command and, when it does not succeed, the on-fail command
func (s *Service) Run(ctx context.Context, input *Input) (*Output, error) {
	output, err := s.Execute(ctx, input)
	if output != nil && output.Success {
		return output, nil
	}
	if errors.Is(err, ErrContainerNotFound) {
		return output, err
	}
	if onFail := input.OnFailCommand(); onFail != "" {
		s.logger.Info("executing on-fail command", zap.String("command", onFail))
		_, _ = s.Execute(ctx, &Input{Container: input.Container, Command: onFail, Shell: input.Shell})
	}
	return output, err
}

// Execute runs input.Command, retrying while allowed
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	input.Init()
	var successExpr, failExpr *regexp.Regexp
	var err error
	if input.SuccessPattern != "" {
		if successExpr, err = regexp.Compile("(?m)" + input.SuccessPattern); err != nil {
			return nil, fmt.Errorf("invalid success pattern: %w", err)
		}
	}
	if input.FailPattern != "" {
		if failExpr, err = regexp.Compile("(?m)" + input.FailPattern); err != nil {
			return nil, fmt.Errorf("invalid fail pattern: %w", err)
		}
	}
	sh, err := s.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	command := input.Execution()
	s.reporter.Executing(command)
	started := clock.Now()
	output := &Output{}
	var previous string
	willRetry := func() bool {
		return input.Retry && clock.Since(started) < input.TimeLimit
	}
	fail := func(result string, retrying, suppress bool) {
		elapsed := clock.Since(started).Truncate(time.Second)
		if previous != result && !suppress {
			s.reporter.Failure(result, elapsed)
			if retrying {
				s.reporter.Retrying(elapsed)
			}
			previous = result
		}
		if !retrying && suppress {
			s.reporter.Failure(result, elapsed)
		}
	}

	attempt := func() error {
		output.Attempts++
		result, status, runErr := sh.Run(ctx, command, runner.WithTimeout(int(input.TimeLimit.Milliseconds())))
		output.Output, output.Status = result, status
		switch {
		case status == StopOnErrorStatus:
			fail(fmt.Sprintf("\"ncs_cli --stop-on-error\" stopped execution:\n\n%s", result), willRetry(), input.SuppressError)
			return errAttemptFailed
		case status != 0:
			if noSuchContainerPattern.MatchString(result) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrContainerNotFound, input.Container))
			}
			fail(fmt.Sprintf("exit status %d:\n\n%s", status, result), willRetry(), input.SuppressError)
			return errAttemptFailed
		case runErr != nil:
			s.logger.Error("failed to run command", zap.Error(runErr))
			fail("Unhandled exception executing command", willRetry(), input.SuppressError)
			return errAttemptFailed
		}
		if failExpr != nil && failExpr.MatchString(result) {
			fail(result, false, false)
			return backoff.Permanent(errFailPatternMatched)
		}
		if successExpr != nil && !successExpr.MatchString(result) {
			fail(result, willRetry(), input.SuppressError)
			return errAttemptFailed
		}
		s.reporter.Success(result, clock.Since(started).Truncate(time.Second))
		return nil
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	retryCtx := ctx
	if input.Retry {
		var cancel context.CancelFunc
		retryCtx, cancel = context.WithTimeout(ctx, input.TimeLimit)
		defer cancel()
		policy = backoff.NewConstantBackOff(input.RetryInterval)
	}
	err = backoff.Retry(attempt, backoff.WithContext(policy, retryCtx))
	output.Elapsed = clock.Since(started)
	switch {
	case err == nil:
		output.Success = true
		return output, nil
	case errors.Is(err, errFailPatternMatched):
		return output, nil
	case errors.Is(err, ErrContainerNotFound):
		s.logger.Error("no NSO container, exiting immediately", zap.String("container", input.Container))
		return output, err
	case ctx.Err() != nil:
		return output, ctx.Err()
	case input.Retry:
		return output, fmt.Errorf("%w: %v", ErrTimeLimitExceeded, input.TimeLimit)
	}
	return output, nil
}

func (s *Service) session(ctx context.Context) (Runner, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.runner != nil {
		return s.runner, nil
	}
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, err
	}
	s.runner = service
	s.closer = service.Close
	return s.runner, nil
}

// Close releases the shell session
func (s *Service) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.runner, s.closer = nil, nil
	return err
}

// New creates a CLI service
func New(options ...Option) *Service {
	ret := &Service{logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.reporter == nil {
		ret.reporter = NewLogReporter(ret.logger)
	}
	return ret
}
