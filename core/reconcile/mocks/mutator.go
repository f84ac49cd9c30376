package mocks

import (
	"context"

	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Mutator is a mock implementation of reconcile.Mutator
type Mutator struct {
	mock.Mock
}

func (m *Mutator) AddRule(ctx context.Context, bucket string, rule *lifecycle.Rule) error {
	args := m.Called(ctx, bucket, rule)
	return args.Error(0)
}

func (m *Mutator) RemoveRule(ctx context.Context, bucket string, rule *lifecycle.Rule) error {
	args := m.Called(ctx, bucket, rule)
	return args.Error(0)
}

func (m *Mutator) Commit(ctx context.Context, bucket string) (reconcile.CommitMode, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(reconcile.CommitMode), args.Error(1)
}

// Recorder is a mock implementation of reconcile.Recorder
type Recorder struct {
	mock.Mock
}

func (m *Recorder) Record(ctx context.Context, report *reconcile.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// Summariser is a mock implementation of reconcile.Summariser
type Summariser struct {
	mock.Mock
}

func (m *Summariser) Summarise(ctx context.Context, c *lifecycle.RuleCollection) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}
