package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
)

type FamilyService struct {
	repo     family.Repository
	idgen    idgen.Generator
	auditSvc *AuditService
	log      *zap.Logger
}

func NewFamilyService(repo family.Repository, gen idgen.Generator, auditSvc *AuditService, log *zap.Logger) *FamilyService {
	return &FamilyService{repo: repo, idgen: gen, auditSvc: auditSvc, log: log}
}

func (s *FamilyService) AddMember(ctx context.Context, cmd *family.AddMemberCommand, ip string) (*family.Member, error) {
	if err := validateAddMember(cmd); err != nil {
		return nil, err
	}

	photoURL := cmd.PhotoURL
	if photoURL == "" {
		photoURL = family.DefaultPhotoURL(cmd.Name)
	}

	m := &family.Member{
		ID:           s.idgen.NewID(),
		UserID:       cmd.UserID,
		Name:         strings.TrimSpace(cmd.Name),
		Relationship: strings.TrimSpace(cmd.Relationship),
		PhotoURL:     photoURL,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error("failed to create family member", zap.Error(err))
		return nil, fmt.Errorf("creating family member: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: &cmd.UserID, Action: "create",
		ResourceType: "family_member", ResourceID: m.ID.String(), IPAddress: ip,
	})

	return m, nil
}

func (s *FamilyService) ListMembers(ctx context.Context, userID uuid.UUID) ([]*family.Member, error) {
	return s.repo.ListByUser(ctx, userID)
}

func validateAddMember(cmd *family.AddMemberCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.UserID == uuid.Nil {
		errs = append(errs, "user_id is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
