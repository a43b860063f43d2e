package cdb

import (
	"context"

	"github.com/viant/callpoint/model/types"
)

// Trans is a transaction handle bound to a configuration database
type Trans struct {
	id string
	db *Service
}

var _ types.Trans = (*Trans)(nil)

// ID returns transaction id
func (t *Trans) ID() string {
	return t.id
}

// Get reads a leaf value
func (t *Trans) Get(ctx context.Context, kp types.KeyPath) (string, error) {
	return t.db.Get(ctx, kp)
}

// Set writes a leaf value
func (t *Trans) Set(ctx context.Context, kp types.KeyPath, value string) error {
	return t.db.Set(ctx, kp, value)
}
