package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

// ScheduleService manages the windows in which a service can be booked.
// Window structure is validated at the door; rows that predate a rule
// change and fail validation today are skipped by the availability engine
// with a warning rather than breaking queries.
type ScheduleService struct {
	repo     schedule.Repository
	services svc.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewScheduleService(repo schedule.Repository, services svc.Repository, auditSvc *AuditService, log *zap.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, services: services, auditSvc: auditSvc, log: log}
}

func (s *ScheduleService) CreateWindow(ctx context.Context, cmd *schedule.CreateWindowCommand, callerID uuid.UUID, callerRole string, ip string) (*schedule.Window, error) {
	if _, err := s.services.GetByID(ctx, cmd.ServiceID); err != nil {
		return nil, fmt.Errorf("verifying service: %w", err)
	}

	var w *schedule.Window
	switch cmd.Kind {
	case schedule.KindRecurring:
		if cmd.DayOfWeek == nil {
			return nil, schedule.ErrMissingDayOfWeek
		}
		w = schedule.NewRecurring(cmd.ServiceID, time.Weekday(*cmd.DayOfWeek), cmd.WeekOfMonth, cmd.StartTime, cmd.EndTime)
	case schedule.KindSpecific:
		if cmd.Date == nil {
			return nil, schedule.ErrMissingDate
		}
		w = schedule.NewSpecific(cmd.ServiceID, *cmd.Date, cmd.StartTime, cmd.EndTime)
	default:
		return nil, schedule.ErrInvalidKind
	}
	w.CreatedBy = cmd.CreatedBy

	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, w); err != nil {
		s.log.Error("failed to create schedule window", zap.Error(err))
		return nil, fmt.Errorf("creating schedule window: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "schedule_window",
		ResourceID:   w.ID.String(),
		IPAddress:    ip,
	})

	return w, nil
}

func (s *ScheduleService) UpdateWindow(ctx context.Context, id uuid.UUID, cmd *schedule.UpdateWindowCommand, callerID uuid.UUID, callerRole string, ip string) (*schedule.Window, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.DayOfWeek != nil {
		w.DayOfWeek = cmd.DayOfWeek
	}
	if cmd.WeekOfMonth != nil {
		w.WeekOfMonth = cmd.WeekOfMonth
	}
	if cmd.Date != nil {
		d := *cmd.Date
		w.Date = &d
	}
	if cmd.StartTime != nil {
		w.StartTime = *cmd.StartTime
	}
	if cmd.EndTime != nil {
		w.EndTime = *cmd.EndTime
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("updating schedule window: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "schedule_window", ResourceID: id.String(), IPAddress: ip,
	})

	return w, nil
}

func (s *ScheduleService) DeleteWindow(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting schedule window: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "delete", ResourceType: "schedule_window", ResourceID: id.String(), IPAddress: ip,
	})

	return nil
}

func (s *ScheduleService) ListWindows(ctx context.Context, serviceID uuid.UUID) ([]*schedule.Window, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.repo.ListByService(ctx, serviceID)
}
