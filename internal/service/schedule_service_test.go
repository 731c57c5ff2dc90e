package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

type scheduleFixture struct {
	repo     *mockScheduleRepo
	services *mockServiceRepo
	sut      *ScheduleService

	serviceID uuid.UUID
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	f := &scheduleFixture{
		repo:      new(mockScheduleRepo),
		services:  new(mockServiceRepo),
		serviceID: uuid.New(),
	}

	audit := newTestAuditService()
	t.Cleanup(audit.Shutdown)

	f.sut = NewScheduleService(f.repo, f.services, audit, zap.NewNop())
	return f
}

func (f *scheduleFixture) stubService() {
	f.services.On("GetByID", mock.Anything, f.serviceID).Return(&svc.Service{
		ID: f.serviceID, Name: "Flu vaccination", DurationMins: 30, Active: true,
	}, nil)
}

func intPtr(v int) *int { return &v }

func TestCreateRecurringWindow(t *testing.T) {
	f := newScheduleFixture(t)
	f.stubService()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*schedule.Window")).Return(nil)

	w, err := f.sut.CreateWindow(context.Background(), &schedule.CreateWindowCommand{
		ServiceID:   f.serviceID,
		Kind:        schedule.KindRecurring,
		DayOfWeek:   intPtr(int(time.Monday)),
		WeekOfMonth: intPtr(2),
		StartTime:   schedule.NewTimeOfDay(9, 0),
		EndTime:     schedule.NewTimeOfDay(11, 0),
		CreatedBy:   uuid.New(),
	}, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, schedule.KindRecurring, w.Kind)
	require.NotNil(t, w.DayOfWeek)
	assert.Equal(t, int(time.Monday), *w.DayOfWeek)
	assert.Nil(t, w.Date)
}

func TestCreateSpecificWindow(t *testing.T) {
	f := newScheduleFixture(t)
	f.stubService()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*schedule.Window")).Return(nil)

	d := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	w, err := f.sut.CreateWindow(context.Background(), &schedule.CreateWindowCommand{
		ServiceID: f.serviceID,
		Kind:      schedule.KindSpecific,
		Date:      &d,
		StartTime: schedule.NewTimeOfDay(14, 0),
		EndTime:   schedule.NewTimeOfDay(16, 0),
		CreatedBy: uuid.New(),
	}, uuid.New(), "pharmacist", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, schedule.KindSpecific, w.Kind)
	require.NotNil(t, w.Date)
	assert.Nil(t, w.DayOfWeek)
}

func TestCreateWindowValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		cmd     schedule.CreateWindowCommand
		wantErr error
	}{
		{
			name: "end before start",
			cmd: schedule.CreateWindowCommand{
				Kind:      schedule.KindRecurring,
				DayOfWeek: intPtr(1),
				StartTime: schedule.NewTimeOfDay(11, 0),
				EndTime:   schedule.NewTimeOfDay(9, 0),
			},
			wantErr: schedule.ErrEndBeforeStart,
		},
		{
			name: "recurring without weekday",
			cmd: schedule.CreateWindowCommand{
				Kind:      schedule.KindRecurring,
				StartTime: schedule.NewTimeOfDay(9, 0),
				EndTime:   schedule.NewTimeOfDay(11, 0),
			},
			wantErr: schedule.ErrMissingDayOfWeek,
		},
		{
			name: "specific without date",
			cmd: schedule.CreateWindowCommand{
				Kind:      schedule.KindSpecific,
				StartTime: schedule.NewTimeOfDay(9, 0),
				EndTime:   schedule.NewTimeOfDay(11, 0),
			},
			wantErr: schedule.ErrMissingDate,
		},
		{
			name: "unknown kind",
			cmd: schedule.CreateWindowCommand{
				Kind:      "weekly",
				StartTime: schedule.NewTimeOfDay(9, 0),
				EndTime:   schedule.NewTimeOfDay(11, 0),
			},
			wantErr: schedule.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScheduleFixture(t)
			f.stubService()
			tt.cmd.ServiceID = f.serviceID

			_, err := f.sut.CreateWindow(context.Background(), &tt.cmd, uuid.New(), "pharmacist", "10.0.0.1")

			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateWindowUnknownService(t *testing.T) {
	f := newScheduleFixture(t)
	f.services.On("GetByID", mock.Anything, f.serviceID).Return(nil, svc.ErrServiceNotFound)

	_, err := f.sut.CreateWindow(context.Background(), &schedule.CreateWindowCommand{
		ServiceID: f.serviceID,
		Kind:      schedule.KindRecurring,
		DayOfWeek: intPtr(1),
		StartTime: schedule.NewTimeOfDay(9, 0),
		EndTime:   schedule.NewTimeOfDay(11, 0),
	}, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, svc.ErrServiceNotFound)
}

func TestUpdateWindowRevalidates(t *testing.T) {
	f := newScheduleFixture(t)
	existing := schedule.NewRecurring(f.serviceID, time.Monday, nil, schedule.NewTimeOfDay(9, 0), schedule.NewTimeOfDay(11, 0))
	existing.ID = uuid.New()
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	bad := schedule.NewTimeOfDay(8, 0)
	_, err := f.sut.UpdateWindow(context.Background(), existing.ID, &schedule.UpdateWindowCommand{
		EndTime: &bad,
	}, uuid.New(), "pharmacist", "10.0.0.1")

	assert.ErrorIs(t, err, schedule.ErrEndBeforeStart)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteWindow(t *testing.T) {
	f := newScheduleFixture(t)
	existing := schedule.NewRecurring(f.serviceID, time.Monday, nil, schedule.NewTimeOfDay(9, 0), schedule.NewTimeOfDay(11, 0))
	existing.ID = uuid.New()
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.repo.On("SoftDelete", mock.Anything, existing.ID).Return(nil)

	require.NoError(t, f.sut.DeleteWindow(context.Background(), existing.ID, uuid.New(), "admin", "10.0.0.1"))
	f.repo.AssertExpectations(t)
}
