package cdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/callpoint/internal/idgen"
	"github.com/viant/callpoint/model/types"
	"github.com/viant/callpoint/service/dao"
	"github.com/viant/callpoint/service/dao/store"
)

// Leaf is a single configuration value addressed by key path
type Leaf struct {
	Path  string `json:"path" yaml:"path"`
	Value string `json:"value" yaml:"value"`
}

// Service is an in-memory configuration database
type Service struct {
	leaves dao.Service[string, Leaf]
}

// Set stores a leaf value
func (s *Service) Set(ctx context.Context, kp types.KeyPath, value string) error {
	return s.leaves.Save(ctx, &Leaf{Path: kp.String(), Value: value})
}

// Get returns a leaf value
func (s *Service) Get(ctx context.Context, kp types.KeyPath) (string, error) {
	leaf, err := s.leaves.Load(ctx, kp.String())
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", kp, err)
	}
	return leaf.Value, nil
}

// Delete removes a leaf
func (s *Service) Delete(ctx context.Context, kp types.KeyPath) error {
	return s.leaves.Delete(ctx, kp.String())
}

// List returns the leaf at kp and leaves under kp
func (s *Service) List(ctx context.Context, kp types.KeyPath) ([]*Leaf, error) {
	if len(kp) == 0 {
		return s.leaves.List(ctx)
	}
	prefix := kp.String()
	candidates, err := s.leaves.List(ctx, dao.NewParameter(dao.PrefixParameter, prefix))
	if err != nil {
		return nil, err
	}
	keyed := strings.HasPrefix(kp[len(kp)-1], "{")
	var ret []*Leaf
	for _, leaf := range candidates {
		if isUnder(leaf.Path, prefix, keyed) {
			ret = append(ret, leaf)
		}
	}
	return ret, nil
}

// isUnder reports whether path equals prefix or continues it at an element boundary;
// a list element may continue with its key unless prefix already ends with one.
func isUnder(path, prefix string, keyed bool) bool {
	if len(path) == len(prefix) {
		return path == prefix
	}
	switch path[len(prefix)] {
	case '/':
		return true
	case '{':
		return !keyed
	}
	return false
}

// NewTrans opens a transaction handle
func (s *Service) NewTrans(ctx context.Context) *Trans {
	return &Trans{id: idgen.New(), db: s}
}

// New creates a configuration database backed by the supplied store, or by memory when nil
func New(leaves dao.Service[string, Leaf]) *Service {
	if leaves == nil {
		leaves = store.NewMemoryStore[Leaf](func(l *Leaf) string { return l.Path })
	}
	return &Service{leaves: leaves}
}
