package mocks

import (
	"context"

	"food-storefront/internal/cart"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) LoadCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 cart.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(cart.Cart)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) SaveCart(ctx context.Context, sessionID string, c cart.Cart) error {
	ret := _m.Called(ctx, sessionID, c)
	return ret.Error(0)
}

func (_m *CartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func (_m *CartRepository) AcquireCheckout(ctx context.Context, sessionID string) (bool, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *CartRepository) ReleaseCheckout(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func NewCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
