package nsocli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gosh/runner"
)

type result struct {
	output string
	status int
	err    error
}

type fakeRunner struct {
	mux      sync.Mutex
	results  []result
	commands []string
}

func (f *fakeRunner) Run(ctx context.Context, command string, options ...runner.Option) (string, int, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.commands = append(f.commands, command)
	idx := len(f.commands) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	return r.output, r.status, r.err
}

type recorder struct {
	failures  []string
	successes []string
	retries   int
}

func (r *recorder) Executing(command string)                      {}
func (r *recorder) Success(output string, elapsed time.Duration) { r.successes = append(r.successes, output) }
func (r *recorder) Failure(output string, elapsed time.Duration) { r.failures = append(r.failures, output) }
func (r *recorder) Retrying(elapsed time.Duration)               { r.retries++ }

func TestService_Execute(t *testing.T) {
	testCases := []struct {
		description    string
		input          *Input
		results        []result
		expectSuccess  bool
		expectErr      error
		expectAttempts int
		expectFailures int
	}{
		{
			description:    "passes through without pattern",
			input:          &Input{Command: "show packages"},
			results:        []result{{output: "ok"}},
			expectSuccess:  true,
			expectAttempts: 1,
		},
		{
			description:    "success pattern matches",
			input:          &Input{Command: "show packages", SuccessPattern: "^oper-status up$"},
			results:        []result{{output: "package x\noper-status up\n"}},
			expectSuccess:  true,
			expectAttempts: 1,
		},
		{
			description:    "success pattern misses without retry",
			input:          &Input{Command: "show packages", SuccessPattern: "up"},
			results:        []result{{output: "down"}},
			expectAttempts: 1,
			expectFailures: 1,
		},
		{
			description:    "fail pattern stops retries",
			input:          &Input{Command: "show packages", FailPattern: "error", Retry: true, RetryInterval: time.Millisecond, TimeLimit: time.Second},
			results:        []result{{output: "syntax error"}},
			expectAttempts: 1,
			expectFailures: 1,
		},
		{
			description:    "retry until success",
			input:          &Input{Command: "show packages", SuccessPattern: "up", Retry: true, RetryInterval: time.Millisecond, TimeLimit: 5 * time.Second},
			results:        []result{{output: "down"}, {output: "down"}, {output: "up"}},
			expectSuccess:  true,
			expectAttempts: 3,
			expectFailures: 1,
		},
		{
			description:    "stop on error status",
			input:          &Input{Command: "bogus"},
			results:        []result{{output: "syntax error: unknown command", status: StopOnErrorStatus}},
			expectAttempts: 1,
			expectFailures: 1,
		},
		{
			description:    "missing container aborts",
			input:          &Input{Command: "show packages", Retry: true, RetryInterval: time.Millisecond, TimeLimit: time.Second},
			results:        []result{{output: "Error: No such container: ncs-test", status: 1}},
			expectErr:      ErrContainerNotFound,
			expectAttempts: 1,
		},
		{
			description:    "time limit exceeded",
			input:          &Input{Command: "show packages", SuccessPattern: "up", Retry: true, RetryInterval: 5 * time.Millisecond, TimeLimit: 50 * time.Millisecond},
			results:        []result{{output: "down"}},
			expectErr:      ErrTimeLimitExceeded,
			expectFailures: 1,
		},
		{
			description:    "suppressed errors report final failure",
			input:          &Input{Command: "show packages", SuccessPattern: "up", SuppressError: true},
			results:        []result{{output: "down"}},
			expectAttempts: 1,
			expectFailures: 1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			fake := &fakeRunner{results: testCase.results}
			rec := &recorder{}
			srv := New(WithRunner(fake), WithReporter(rec))
			output, err := srv.Execute(context.Background(), testCase.input)
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, output)
			assert.Equal(t, testCase.expectSuccess, output.Success)
			if testCase.expectAttempts > 0 {
				assert.Equal(t, testCase.expectAttempts, output.Attempts)
			}
			assert.Len(t, rec.failures, testCase.expectFailures)
		})
	}
}

func TestService_Run_OnFail(t *testing.T) {
	fake := &fakeRunner{results: []result{{output: "down"}}}
	srv := New(WithRunner(fake), WithReporter(&recorder{}))
	output, err := srv.Run(context.Background(), &Input{Container: "nso", Command: "show packages", SuccessPattern: "up"})
	assert.NoError(t, err)
	assert.False(t, output.Success)
	require.Len(t, fake.commands, 2)
	assert.Contains(t, fake.commands[1], "show al:alarms")
	assert.Contains(t, fake.commands[1], "docker exec nso ")
}

func TestService_Run_ShellWithoutOnFail(t *testing.T) {
	fake := &fakeRunner{results: []result{{output: "", status: 2}}}
	srv := New(WithRunner(fake), WithReporter(&recorder{}))
	output, err := srv.Run(context.Background(), &Input{Command: "false", Shell: true})
	assert.NoError(t, err)
	assert.False(t, output.Success)
	assert.Equal(t, []string{"false"}, fake.commands)
}

func TestService_InvalidPattern(t *testing.T) {
	srv := New(WithRunner(&fakeRunner{results: []result{{}}}))
	_, err := srv.Execute(context.Background(), &Input{Command: "x", SuccessPattern: "("})
	assert.Error(t, err)
}

func TestFormatCommand(t *testing.T) {
	input := &Input{Container: "nso-1", Command: "request packages reload\nshow 'x'"}
	assert.Equal(t,
		`docker exec nso-1 bash -lc "echo -e 'unhide debug`+"\n"+`request packages reload`+"\n"+`show \'x\'' | ncs_cli --noninteractive --stop-on-error -u admin 2>&1" `,
		input.Execution())
}
