package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type HandlerMock[In, Out any] struct {
	mock.Mock
}

func (m *HandlerMock[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(Out)
	return out, args.Error(1)
}

type ExecutorMock[In any] struct {
	mock.Mock
}

func (m *ExecutorMock[In]) Handle(ctx context.Context, in In) error {
	return m.Called(ctx, in).Error(0)
}
