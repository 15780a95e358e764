package mocks

import (
	"context"
	"time"

	"food-storefront/status-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) SetStatus(ctx context.Context, orderID, status string, at time.Time) error {
	ret := _m.Called(ctx, orderID, status, at)
	return ret.Error(0)
}

func (_m *StoreInterface) GetStatus(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	ret := _m.Called(ctx, orderID)

	var r0 *domain.OrderStatus
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.OrderStatus); ok {
		r0 = rf(ctx, orderID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderStatus)
	}

	return r0, ret.Error(1)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
