package app

import (
	"context"
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &idmtest.Decorator{}
	c2 := &idmtest.Decorator{}
	c3 := &idmtest.Decorator{}
	h := &idmtest.Handler{}

	stack := ChainDecorators(c1, c2, c3).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, nil)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// an error in the middle stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainNilDecorator(t *testing.T) {
	var nilDecorator *idmtest.Decorator
	c := &idmtest.Decorator{}
	h := &idmtest.Handler{}

	stack := ChainDecorators(nil, c, nilDecorator).Chain(nil).WithHandler(h)
	_, err := stack.Deliver(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
