package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

// CatalogService manages the bookable service offerings of a pharmacy.
type CatalogService struct {
	repo         svc.Repository
	pharmacyRepo pharmacy.Repository
	auditSvc     *AuditService
	log          *zap.Logger
}

func NewCatalogService(repo svc.Repository, pharmacyRepo pharmacy.Repository, auditSvc *AuditService, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, pharmacyRepo: pharmacyRepo, auditSvc: auditSvc, log: log}
}

func (s *CatalogService) CreateService(ctx context.Context, cmd *svc.CreateServiceCommand, callerID uuid.UUID, callerRole string, ip string) (*svc.Service, error) {
	p, err := s.pharmacyRepo.GetByID(ctx, cmd.PharmacyID)
	if err != nil {
		return nil, fmt.Errorf("verifying pharmacy: %w", err)
	}
	if !p.IsActive() {
		return nil, &ValidationError{Fields: []string{"pharmacy is not active"}}
	}

	offering := &svc.Service{
		PharmacyID:   cmd.PharmacyID,
		Name:         strings.TrimSpace(cmd.Name),
		Description:  cmd.Description,
		DurationMins: cmd.DurationMins,
		Active:       true,
		CreatedBy:    cmd.CreatedBy,
	}

	if err := offering.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, offering); err != nil {
		s.log.Error("failed to create service", zap.Error(err))
		return nil, fmt.Errorf("creating service: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "service",
		ResourceID:   offering.ID.String(),
		IPAddress:    ip,
	})

	return offering, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*svc.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, cmd *svc.UpdateServiceCommand, callerID uuid.UUID, callerRole string, ip string) (*svc.Service, error) {
	if cmd.DurationMins != nil && *cmd.DurationMins <= 0 {
		return nil, svc.ErrInvalidDuration
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "service", ResourceID: id.String(), IPAddress: ip,
	})

	return updated, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting service: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "delete", ResourceType: "service", ResourceID: id.String(), IPAddress: ip,
	})

	return nil
}

func (s *CatalogService) ListServices(ctx context.Context, pharmacyID uuid.UUID) ([]*svc.Service, error) {
	return s.repo.ListByPharmacy(ctx, pharmacyID)
}
