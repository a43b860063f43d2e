package extension

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/callpoint/model/types"
)

type testHandler struct {
	callPoint string
	initErr   error
	initPanic bool
	inits     int
}

func (h *testHandler) CallPoint() string { return h.callPoint }

func (h *testHandler) Init(ctx context.Context, trans types.Trans) error {
	h.inits++
	if h.initPanic {
		panic("init panic")
	}
	return h.initErr
}

func (h *testHandler) Invoke(ctx context.Context, trans types.Trans, name string, kp types.KeyPath, params []types.Param) ([]types.Param, error) {
	return nil, nil
}

func TestActions_Register(t *testing.T) {
	ctx := context.Background()
	actions := NewActions()

	first := &testHandler{callPoint: "b-point"}
	assert.NoError(t, actions.Register(ctx, nil, first))
	assert.Equal(t, 1, first.inits)
	assert.Same(t, first, actions.Lookup("b-point"))

	err := actions.Register(ctx, nil, &testHandler{callPoint: "b-point"})
	assert.True(t, errors.Is(err, types.ErrDuplicateCallPoint))
	assert.Same(t, first, actions.Lookup("b-point"))

	assert.NoError(t, actions.Register(ctx, nil, &testHandler{callPoint: "a-point"}))
	assert.Equal(t, []string{"a-point", "b-point"}, actions.CallPoints())

	actions.Unregister("a-point")
	assert.Nil(t, actions.Lookup("a-point"))
	assert.Equal(t, []string{"b-point"}, actions.CallPoints())
}

func TestActions_RegisterInitFailure(t *testing.T) {
	testCases := []struct {
		description string
		handler     *testHandler
	}{
		{description: "init error", handler: &testHandler{callPoint: "cp", initErr: errors.New("no")}},
		{description: "init panic", handler: &testHandler{callPoint: "cp", initPanic: true}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actions := NewActions()
			err := actions.Register(context.Background(), nil, testCase.handler)
			assert.True(t, errors.Is(err, types.ErrCallbackFailed))
			assert.Nil(t, actions.Lookup("cp"))
		})
	}
}

type registryHandler struct {
	testHandler
	actions  *Actions
	onInit   func(actions *Actions)
	observed []string
}

func (h *registryHandler) Init(ctx context.Context, trans types.Trans) error {
	h.observed = h.actions.CallPoints()
	if h.onInit != nil {
		h.onInit(h.actions)
	}
	return nil
}

func TestActions_RegisterInitUsesRegistry(t *testing.T) {
	ctx := context.Background()
	actions := NewActions()
	assert.NoError(t, actions.Register(ctx, nil, &testHandler{callPoint: "a-point"}))

	handler := &registryHandler{testHandler: testHandler{callPoint: "b-point"}, actions: actions}
	done := make(chan error, 1)
	go func() { done <- actions.Register(ctx, nil, handler) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("register blocked while init read the registry")
	}
	assert.Equal(t, []string{"a-point"}, handler.observed)
	assert.Same(t, handler, actions.Lookup("b-point"))

	racing := &testHandler{callPoint: "c-point"}
	loser := &registryHandler{
		testHandler: testHandler{callPoint: "c-point"},
		actions:     actions,
		onInit: func(actions *Actions) {
			assert.NoError(t, actions.Register(ctx, nil, racing))
		},
	}
	err := actions.Register(ctx, nil, loser)
	assert.True(t, errors.Is(err, types.ErrDuplicateCallPoint))
	assert.Same(t, racing, actions.Lookup("c-point"))
}
