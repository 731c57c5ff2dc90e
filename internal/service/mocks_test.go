package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) Create(ctx context.Context, s *svc.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*svc.Service, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*svc.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepo) Update(ctx context.Context, id uuid.UUID, cmd *svc.UpdateServiceCommand) (*svc.Service, error) {
	args := m.Called(ctx, id, cmd)
	if s, ok := args.Get(0).(*svc.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockServiceRepo) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*svc.Service, error) {
	args := m.Called(ctx, pharmacyID)
	if s, ok := args.Get(0).([]*svc.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) Create(ctx context.Context, w *schedule.Window) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*schedule.Window, error) {
	args := m.Called(ctx, id)
	if w, ok := args.Get(0).(*schedule.Window); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*schedule.Window, error) {
	args := m.Called(ctx, serviceID)
	if w, ok := args.Get(0).([]*schedule.Window); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) Save(ctx context.Context, w *schedule.Window) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockScheduleRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*booking.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepo) ListForDay(ctx context.Context, serviceID uuid.UUID, day time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, serviceID, day)
	if b, ok := args.Get(0).([]*booking.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, q *booking.ListBookingsQuery) (*booking.PagedBookings, error) {
	args := m.Called(ctx, q)
	if p, ok := args.Get(0).(*booking.PagedBookings); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// auditRepoStub swallows audit writes; the worker goroutine may still be
// draining when a test returns, so a plain stub avoids asserting on it.
type auditRepoStub struct{}

func (auditRepoStub) Create(ctx context.Context, entry *domain.AuditLog) error { return nil }

func newTestAuditService() *AuditService {
	return NewAuditService(auditRepoStub{}, zap.NewNop())
}
