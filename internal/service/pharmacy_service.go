package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
)

type PharmacyService struct {
	repo     pharmacy.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPharmacyService(repo pharmacy.Repository, auditSvc *AuditService, log *zap.Logger) *PharmacyService {
	return &PharmacyService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *PharmacyService) CreatePharmacy(ctx context.Context, cmd *pharmacy.CreatePharmacyCommand, callerID uuid.UUID, callerRole string, ip string) (*pharmacy.Pharmacy, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, pharmacy.ErrMissingName
	}

	p := &pharmacy.Pharmacy{
		Name: strings.TrimSpace(cmd.Name),
		ContactInfo: pharmacy.ContactInfo{
			Phone:   strings.TrimSpace(cmd.Phone),
			Email:   strings.ToLower(strings.TrimSpace(cmd.Email)),
			Address: cmd.Address,
			City:    cmd.City,
			ZipCode: cmd.ZipCode,
		},
		Active:    true,
		CreatedBy: cmd.CreatedBy,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create pharmacy", zap.Error(err))
		return nil, fmt.Errorf("creating pharmacy: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "pharmacy",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PharmacyService) GetPharmacy(ctx context.Context, id uuid.UUID) (*pharmacy.Pharmacy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PharmacyService) UpdatePharmacy(ctx context.Context, id uuid.UUID, cmd *pharmacy.UpdatePharmacyCommand, callerID uuid.UUID, callerRole string, ip string) (*pharmacy.Pharmacy, error) {
	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "update", ResourceType: "pharmacy", ResourceID: id.String(), IPAddress: ip,
	})

	return updated, nil
}

func (s *PharmacyService) DeletePharmacy(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting pharmacy: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "delete", ResourceType: "pharmacy", ResourceID: id.String(), IPAddress: ip,
	})

	return nil
}

func (s *PharmacyService) ListPharmacies(ctx context.Context) ([]*pharmacy.Pharmacy, error) {
	return s.repo.List(ctx)
}
