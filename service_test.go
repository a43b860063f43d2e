package callpoint_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/callpoint"
	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/service/action/decrypt"
	"github.com/viant/callpoint/service/action/greeting"
	"github.com/viant/callpoint/service/crypto"
	"go.uber.org/zap"
)

type echoHandler struct{}

func (e *echoHandler) CallPoint() string { return "echo-actionpoint" }

func (e *echoHandler) Init(ctx context.Context, trans types.Trans) error { return nil }

func (e *echoHandler) Invoke(ctx context.Context, trans types.Trans, name string, kp types.KeyPath, params []types.Param) ([]types.Param, error) {
	return params, nil
}

func TestService_Invoke(t *testing.T) {
	ctx := context.Background()
	var mux sync.Mutex
	var observed []string
	srv, err := callpoint.New(ctx,
		callpoint.WithLogger(zap.NewNop()),
		callpoint.WithHandlers(&echoHandler{}),
		callpoint.WithListener(func(invocation *types.Invocation, output []types.Param, err error, elapsed time.Duration) {
			mux.Lock()
			defer mux.Unlock()
			observed = append(observed, invocation.CallPoint+"/"+invocation.Name)
		}),
	)
	require.NoError(t, err)
	defer srv.Close(ctx)

	assert.Equal(t, []string{"echo-actionpoint", greeting.JavaCallPoint}, srv.CallPoints())

	testCases := []struct {
		description string
		callPoint   string
		params      []types.Param
		expect      []types.Param
		expectErr   error
	}{
		{
			description: "java greeting with empty params",
			callPoint:   greeting.JavaCallPoint,
			expect:      []types.Param{{Prefix: "testpkg-java", Tag: "message", Value: "Hello world from Java"}},
		},
		{
			description: "java greeting ignores params",
			callPoint:   greeting.JavaCallPoint,
			params:      []types.Param{{Tag: "garbage", Value: "???"}},
			expect:      []types.Param{{Prefix: "testpkg-java", Tag: "message", Value: "Hello world from Java"}},
		},
		{
			description: "custom handler",
			callPoint:   "echo-actionpoint",
			params:      []types.Param{{Tag: "in", Value: 1}},
			expect:      []types.Param{{Tag: "in", Value: 1}},
		},
		{
			description: "python not configured",
			callPoint:   greeting.PythonCallPoint,
			expectErr:   types.ErrCallPointNotFound,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := srv.Invoke(ctx, nil, testCase.callPoint, "selftest", nil, testCase.params)
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
	assert.Equal(t, []string{
		greeting.JavaCallPoint + "/selftest",
		greeting.JavaCallPoint + "/selftest",
		"echo-actionpoint/selftest",
	}, observed)
}

func TestService_Decrypt(t *testing.T) {
	ctx := context.Background()
	cfg := callpoint.DefaultConfig()
	cfg.CallPoints = []string{greeting.PythonCallPoint, greeting.PyvenvCallPoint, decrypt.CallPoint}
	cfg.Crypto.Key = "integration-key"
	srv, err := callpoint.New(ctx, callpoint.WithConfig(cfg), callpoint.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	keys, err := crypto.New(cfg.Crypto.Key)
	require.NoError(t, err)
	encrypted, err := keys.Encrypt("foobar")
	require.NoError(t, err)

	trans := srv.NewTrans(ctx)
	kp := types.ParseKeyPath("/python-decrypt{x}")
	require.NoError(t, trans.Set(ctx, kp.Append(decrypt.ValueLeaf), encrypted))

	output, err := srv.Invoke(ctx, trans, decrypt.CallPoint, "decrypt", kp, nil)
	require.NoError(t, err)
	assert.Equal(t, "cleartext: foobar", output[0].Value)

	output, err = srv.Invoke(ctx, nil, greeting.PythonCallPoint, "selftest", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello world from Python", output[0].Value)

	output, err = srv.Invoke(ctx, nil, greeting.PyvenvCallPoint, "selftest", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []types.Param{{Prefix: "testpkg-pyvenv-b", Tag: "message", Value: "Hello world from Python pyvenv-b"}}, output)
}

func TestService_DuplicateHandler(t *testing.T) {
	_, err := callpoint.New(context.Background(),
		callpoint.WithLogger(zap.NewNop()),
		callpoint.WithHandlers(greeting.NewJava()))
	assert.True(t, errors.Is(err, types.ErrDuplicateCallPoint))
}

func TestService_CLIInput(t *testing.T) {
	cfg := callpoint.DefaultConfig()
	cfg.CLI.Container = "nso-dev"
	srv, err := callpoint.New(context.Background(), callpoint.WithConfig(cfg), callpoint.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	input := srv.CLIInput("show packages")
	assert.Equal(t, "nso-dev", input.Container)
	assert.Equal(t, cfg.CLI.TimeLimit, input.TimeLimit)
	assert.NotNil(t, srv.CLI())
}
