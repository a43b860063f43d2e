package greeting

import (
	"context"

	"github.com/viant/callpoint/model/types"
)

const (
	// JavaCallPoint serves the java-test action
	JavaCallPoint = "test-java-actionpoint"
	// JavaPrefix refers to the service yang model prefix
	JavaPrefix  = "testpkg-java"
	JavaMessage = "Hello world from Java"

	PythonCallPoint = "test-python-actionpoint"
	PythonPrefix    = "testpkg-python"
	PythonMessage   = "Hello world from Python"

	PyvenvCallPoint = "test-pyvenv-b-actionpoint"
	PyvenvPrefix    = "testpkg-pyvenv-b"
	PyvenvMessage   = "Hello world from Python pyvenv-b"

	// MessageTag is the output leaf name
	MessageTag = "message"
)

var _ types.Handler = (*Service)(nil)

// Service answers every action with a single constant message leaf.
type Service struct {
	callPoint string
	prefix    string
	message   string
	failure   string
	build     func() ([]types.Param, error)
}

// New creates a greeting handler
func New(callPoint, prefix, message string) *Service {
	ret := &Service{callPoint: callPoint, prefix: prefix, message: message, failure: "action failed"}
	ret.build = ret.output
	return ret
}

// NewJava creates the java-test handler
func NewJava() *Service {
	ret := New(JavaCallPoint, JavaPrefix, JavaMessage)
	ret.failure = "java-test failed"
	return ret
}

// NewPython creates the python test handler
func NewPython() *Service {
	return New(PythonCallPoint, PythonPrefix, PythonMessage)
}

// NewPyvenv creates the handler of the virtualenv packaged python test
func NewPyvenv() *Service {
	return New(PyvenvCallPoint, PyvenvPrefix, PyvenvMessage)
}

// CallPoint returns the call point name
func (s *Service) CallPoint() string {
	return s.callPoint
}

// Init does nothing
func (s *Service) Init(ctx context.Context, trans types.Trans) error {
	return nil
}

// Invoke returns the message leaf, ignoring the transaction, key path and input parameters.
func (s *Service) Invoke(ctx context.Context, trans types.Trans, name string, kp types.KeyPath, params []types.Param) (output []types.Param, err error) {
	defer func() {
		if r := recover(); r != nil {
			output, err = nil, types.NewPanicError(s.callPoint, s.failure, r)
		}
	}()
	if output, err = s.build(); err != nil {
		return nil, types.NewCallbackError(s.callPoint, s.failure, err)
	}
	return output, nil
}

func (s *Service) output() ([]types.Param, error) {
	return []types.Param{types.NewParam(s.prefix, MessageTag, s.message)}, nil
}
