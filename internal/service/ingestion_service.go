package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/metrics"
)

// Extractor is the AI document-understanding collaborator.
type Extractor interface {
	Extract(ctx context.Context, file ai.File) (*ai.Extraction, error)
}

type IngestionService struct {
	docRepo    document.Repository
	familyRepo family.Repository
	extractor  Extractor
	idgen      idgen.Generator
	ownership  Ownership
	auditSvc   *AuditService
	collector  *metrics.Collector
	log        *zap.Logger
}

func NewIngestionService(
	docRepo document.Repository,
	familyRepo family.Repository,
	extractor Extractor,
	gen idgen.Generator,
	ownership Ownership,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *IngestionService {
	return &IngestionService{
		docRepo:    docRepo,
		familyRepo: familyRepo,
		extractor:  extractor,
		idgen:      gen,
		ownership:  ownership,
		auditSvc:   auditSvc,
		collector:  collector,
		log:        log,
	}
}

type IngestCommand struct {
	File           ai.File
	FamilyMemberID uuid.UUID
	UserID         uuid.UUID
	IP             string
}

// Ingest runs the upload pipeline: extraction, normalization, abnormality
// back-fill, and commit. An extraction failure is surfaced verbatim and
// nothing is written.
func (s *IngestionService) Ingest(ctx context.Context, cmd *IngestCommand) (*document.HealthDocument, error) {
	if err := validateIngestCommand(cmd); err != nil {
		return nil, err
	}

	member, err := s.familyRepo.GetByID(ctx, cmd.FamilyMemberID)
	if err != nil {
		return nil, fmt.Errorf("verifying family member: %w", err)
	}
	if !s.ownership.Allows(member.UserID, cmd.UserID) {
		return nil, ErrForbidden
	}

	extraction, err := s.extractor.Extract(ctx, cmd.File)
	if err != nil {
		if s.collector != nil {
			s.collector.ExtractionFailuresTotal.Inc()
		}
		s.log.Warn("document extraction failed",
			zap.String("file_name", cmd.File.Name),
			zap.Error(err),
		)
		return nil, err
	}

	doc := &document.HealthDocument{
		ID:                s.idgen.NewID(),
		UserID:            cmd.UserID,
		FamilyMemberID:    cmd.FamilyMemberID,
		FileName:          cmd.File.Name,
		UploadedAt:        time.Now().UTC(),
		Type:              extraction.DocumentType,
		ReportType:        extraction.ReportType,
		Hospital:          extraction.Hospital,
		ClinicalTimestamp: normalizeTimestamp(extraction.Timestamp),
		ExtractedValues:   backfillAbnormal(extraction.ExtractedValues),
		BillingInfo:       extraction.BillingInfo,
		Diagnosis:         extraction.Diagnosis,
		Medications:       extraction.Medications,
		Abnormalities:     extraction.Abnormalities,
		PatientSummary:    extraction.PatientSummary,
		DoctorSummary:     extraction.DoctorSummary,
	}
	if doc.Type == document.TypeReceipt {
		doc.ClaimStatus = document.ClaimNotSubmitted
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("committing document: %w", err)
	}

	if s.collector != nil {
		s.collector.DocumentsIngestedTotal.WithLabelValues(string(doc.Type)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       &cmd.UserID,
		Action:       "ingest",
		ResourceType: "document",
		ResourceID:   doc.ID.String(),
		IPAddress:    cmd.IP,
	})
	s.log.Info("document ingested",
		zap.String("document_id", doc.ID.String()),
		zap.String("type", string(doc.Type)),
		zap.String("family_member_id", cmd.FamilyMemberID.String()),
	)

	return doc, nil
}

func validateIngestCommand(cmd *IngestCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.File.Name) == "" {
		errs = append(errs, "file name is required")
	}
	if len(cmd.File.Data) == 0 {
		errs = append(errs, "file is empty")
	}
	if cmd.FamilyMemberID == uuid.Nil {
		errs = append(errs, "family_member_id is required")
	}
	if cmd.UserID == uuid.Nil {
		errs = append(errs, "user_id is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
}

// normalizeTimestamp canonicalizes the date the model returned; anything
// unparseable falls back to now.
func normalizeTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

var refRangePattern = regexp.MustCompile(`([\d.]+)\s*-\s*([\d.]+)`)

// backfillAbnormal forces is_abnormal on any numeric value that falls
// outside a closed "<lower> - <upper>" reference range. The model's own
// judgment is kept for everything else: in-range values and open-ended
// ranges are never overridden.
func backfillAbnormal(values map[string]document.ExtractedValue) map[string]document.ExtractedValue {
	for name, v := range values {
		num, ok := numericValue(v.Value)
		if !ok {
			continue
		}
		m := refRangePattern.FindStringSubmatch(v.Ref)
		if m == nil {
			continue
		}
		lower, errL := strconv.ParseFloat(m[1], 64)
		upper, errU := strconv.ParseFloat(m[2], 64)
		if errL != nil || errU != nil {
			continue
		}
		if num < lower || num > upper {
			v.IsAbnormal = true
			values[name] = v
		}
	}
	return values
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
