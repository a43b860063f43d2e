package decrypt

import (
	"context"
	"errors"

	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/service/crypto"
)

const (
	CallPoint = "python-decrypt-actionpoint"
	Prefix    = "testpkg-python"
	// ValueLeaf is read relative to the action key path
	ValueLeaf = "encrypted-value"
)

const failure = "decrypt failed"

// Service decrypts the encrypted-value leaf of the node the action runs on.
type Service struct {
	crypto *crypto.Service
}

var _ types.Handler = (*Service)(nil)

func (s *Service) CallPoint() string {
	return CallPoint
}

func (s *Service) Init(ctx context.Context, trans types.Trans) error {
	if s.crypto == nil {
		return crypto.ErrMissingKey
	}
	return nil
}

func (s *Service) Invoke(ctx context.Context, trans types.Trans, name string, kp types.KeyPath, params []types.Param) ([]types.Param, error) {
	if trans == nil {
		return nil, types.NewCallbackError(CallPoint, failure, errors.New("transaction is required"))
	}
	value, err := trans.Get(ctx, kp.Append(ValueLeaf))
	if err != nil {
		return nil, types.NewCallbackError(CallPoint, failure, err)
	}
	cleartext, err := s.crypto.Decrypt(value)
	if err != nil {
		return nil, types.NewCallbackError(CallPoint, failure, err)
	}
	return []types.Param{types.NewParam(Prefix, "message", "cleartext: "+cleartext)}, nil
}

// New creates decrypt action handler
func New(keys *crypto.Service) *Service {
	return &Service{crypto: keys}
}
