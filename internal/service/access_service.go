package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/config"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/metrics"
)

// AccessService manages doctor share tokens: minting, revocation, and
// resolution of the read-only doctor view. Tokens never expire in the
// current scope.
type AccessService struct {
	doctorRepo doctor.Repository
	docRepo    document.Repository
	familyRepo family.Repository
	idgen      idgen.Generator
	cfg        config.ShareConfig
	ownership  Ownership
	directory  []doctor.Profile
	auditSvc   *AuditService
	collector  *metrics.Collector
	log        *zap.Logger
}

func NewAccessService(
	doctorRepo doctor.Repository,
	docRepo document.Repository,
	familyRepo family.Repository,
	gen idgen.Generator,
	cfg config.ShareConfig,
	ownership Ownership,
	directory []doctor.Profile,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *AccessService {
	return &AccessService{
		doctorRepo: doctorRepo,
		docRepo:    docRepo,
		familyRepo: familyRepo,
		idgen:      gen,
		cfg:        cfg,
		ownership:  ownership,
		directory:  directory,
		auditSvc:   auditSvc,
		collector:  collector,
		log:        log,
	}
}

// Grant gives a doctor read access to the listed family members. Granting
// to an already-known doctor unions the new set into the existing one and
// keeps the existing token; only unknown doctors get a fresh token.
func (s *AccessService) Grant(ctx context.Context, cmd *doctor.GrantAccessCommand, ip string) (*doctor.Doctor, error) {
	if err := s.validateGrant(ctx, cmd); err != nil {
		return nil, err
	}

	existing, err := s.doctorRepo.GetByID(ctx, cmd.Profile.ID)
	switch {
	case err == nil:
		existing.GrantFamilyMembers(cmd.FamilyMemberIDs)
		if err := s.doctorRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("updating doctor access: %w", err)
		}
		s.auditSvc.LogAsync(ctx, AuditEntry{
			UserID: &cmd.UserID, Action: "grant",
			ResourceType: "doctor", ResourceID: existing.ID.String(), IPAddress: ip,
		})
		return existing, nil

	case errors.Is(err, doctor.ErrDoctorNotFound):
		// fall through to create

	default:
		return nil, fmt.Errorf("looking up doctor: %w", err)
	}

	token, err := s.idgen.NewShareToken(s.cfg.TokenBytes)
	if err != nil {
		return nil, err
	}

	d := &doctor.Doctor{
		ID:              cmd.Profile.ID,
		UserID:          cmd.UserID,
		Name:            cmd.Profile.Name,
		Hospital:        cmd.Profile.Hospital,
		Specialty:       cmd.Profile.Specialty,
		AccessToken:     token,
		AccessLink:      fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.BaseURL, "/"), token),
		FamilyMemberIDs: nil,
	}
	d.GrantFamilyMembers(cmd.FamilyMemberIDs)

	if err := s.doctorRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("creating doctor access: %w", err)
	}

	if s.collector != nil {
		s.collector.ShareLinksCreatedTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: &cmd.UserID, Action: "grant",
		ResourceType: "doctor", ResourceID: d.ID.String(), IPAddress: ip,
	})
	s.log.Info("doctor access granted",
		zap.String("doctor_id", d.ID.String()),
		zap.Int("family_members", len(d.FamilyMemberIDs)),
	)

	return d, nil
}

// Revoke hard-deletes the doctor record; the former token stops resolving
// immediately.
func (s *AccessService) Revoke(ctx context.Context, doctorID, userID uuid.UUID, ip string) error {
	d, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !s.ownership.Allows(d.UserID, userID) {
		return ErrForbidden
	}

	if err := s.doctorRepo.Delete(ctx, doctorID); err != nil {
		return fmt.Errorf("revoking doctor access: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: &userID, Action: "revoke",
		ResourceType: "doctor", ResourceID: doctorID.String(), IPAddress: ip,
	})
	return nil
}

func (s *AccessService) ListDoctors(ctx context.Context, userID uuid.UUID) ([]*doctor.Doctor, error) {
	return s.doctorRepo.ListByUser(ctx, userID)
}

// SharedView is everything a doctor sees through a share link.
type SharedView struct {
	Documents    []*document.HealthDocument `json:"documents"`
	PatientLabel string                     `json:"patient_label"`
	DoctorName   string                     `json:"doctor_name"`
}

// Resolve looks up a share token by exact equality and returns the scoped
// read-only view. Any unmatched token yields doctor.ErrAccessDenied with no
// further detail.
func (s *AccessService) Resolve(ctx context.Context, token string, ip string) (*SharedView, error) {
	d, err := s.doctorRepo.GetByToken(ctx, token)
	if err != nil {
		if s.collector != nil {
			s.collector.ShareResolutionsTotal.WithLabelValues("denied").Inc()
		}
		s.log.Warn("share token resolution denied", zap.String("ip", ip))
		return nil, doctor.ErrAccessDenied
	}

	docs, err := s.docRepo.List(ctx, &document.ListDocumentsQuery{
		FamilyMemberIDs: d.FamilyMemberIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("listing shared documents: %w", err)
	}

	if s.collector != nil {
		s.collector.ShareResolutionsTotal.WithLabelValues("granted").Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "resolve",
		ResourceType: "doctor",
		ResourceID:   d.ID.String(),
		IPAddress:    ip,
	})

	return &SharedView{
		Documents:    docs,
		PatientLabel: s.patientLabel(ctx, d),
		DoctorName:   d.Name,
	}, nil
}

// SearchDirectory filters the seeded doctor directory by a case-insensitive
// substring match on name or hospital. An empty query returns nothing.
func (s *AccessService) SearchDirectory(query string) []doctor.Profile {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var results []doctor.Profile
	for _, p := range s.directory {
		if p.MatchesQuery(query) {
			results = append(results, p)
		}
	}
	return results
}

func (s *AccessService) validateGrant(ctx context.Context, cmd *doctor.GrantAccessCommand) error {
	var errs []string

	if cmd.Profile.ID == uuid.Nil {
		errs = append(errs, "doctor id is required")
	}
	if strings.TrimSpace(cmd.Profile.Name) == "" {
		errs = append(errs, "doctor name is required")
	}
	if len(cmd.FamilyMemberIDs) == 0 {
		errs = append(errs, "at least one family member is required")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	for _, id := range cmd.FamilyMemberIDs {
		member, err := s.familyRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("verifying family member %s: %w", id, err)
		}
		if !s.ownership.Allows(member.UserID, cmd.UserID) {
			return ErrForbidden
		}
	}
	return nil
}

// patientLabel names the shared view after the family hub's first member.
func (s *AccessService) patientLabel(ctx context.Context, d *doctor.Doctor) string {
	if len(d.FamilyMemberIDs) == 0 {
		return "Shared records"
	}
	member, err := s.familyRepo.GetByID(ctx, d.FamilyMemberIDs[0])
	if err != nil {
		return "Shared records"
	}
	return member.Name + "'s Family"
}
