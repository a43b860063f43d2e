package types

import "context"

// Handler is an action callback bound to a single call point.
//
// Init is called once when the handler is registered; Invoke is called for
// every action request routed to the call point. Implementations must be safe
// for concurrent Invoke calls.
type Handler interface {
	CallPoint() string
	Init(ctx context.Context, trans Trans) error
	Invoke(ctx context.Context, trans Trans, name string, kp KeyPath, params []Param) ([]Param, error)
}

// Trans is the transaction handle passed to callbacks. Handlers that only
// build constant output never inspect it.
type Trans interface {
	ID() string
	Get(ctx context.Context, kp KeyPath) (string, error)
}

// Invocation represents a single action request routed to a call point.
type Invocation struct {
	CallPoint string
	Name      string
	KeyPath   KeyPath
	Params    []Param
	Trans     Trans
}
