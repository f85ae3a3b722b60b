package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
)

type stubExtractor struct {
	extraction *ai.Extraction
	err        error
}

func (s *stubExtractor) Extract(_ context.Context, _ ai.File) (*ai.Extraction, error) {
	return s.extraction, s.err
}

type ingestionFixture struct {
	svc     *IngestionService
	docs    *memory.DocumentRepository
	userID  uuid.UUID
	member  *family.Member
	cleanup func()
}

func newIngestionFixture(t *testing.T, extractor Extractor) *ingestionFixture {
	t.Helper()

	userID := uuid.New()
	docs := memory.NewDocumentRepository(nil)
	members := memory.NewFamilyRepository(nil)
	auditSvc := NewAuditService(memory.NewAuditRepository(), nil, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)

	member := &family.Member{ID: uuid.New(), UserID: userID, Name: "Dhanya"}
	require.NoError(t, members.Create(context.Background(), member))

	svc := NewIngestionService(docs, members, extractor, idgen.New(), Ownership{}, auditSvc, nil, zap.NewNop())
	return &ingestionFixture{svc: svc, docs: docs, userID: userID, member: member}
}

func validFile() ai.File {
	return ai.File{Name: "report.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-")}
}

func TestIngestBackfillForcesAbnormalOutOfRange(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{
		DocumentType: document.TypeLabReport,
		ReportType:   "Lipid Panel",
		Timestamp:    "2024-03-01",
		ExtractedValues: map[string]document.ExtractedValue{
			"Total Cholesterol": {Value: 210.0, Unit: "mg/dL", Ref: "70 - 200", IsAbnormal: false},
			"HDL":               {Value: 55.0, Unit: "mg/dL", Ref: "40 - 60", IsAbnormal: false},
			"LDL":               {Value: 150.0, Unit: "mg/dL", Ref: "<100", IsAbnormal: false},
		},
	}})

	doc, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	require.NoError(t, err)

	assert.True(t, doc.ExtractedValues["Total Cholesterol"].IsAbnormal,
		"value above a closed range must be forced abnormal")
	assert.False(t, doc.ExtractedValues["HDL"].IsAbnormal,
		"in-range value must never be forced")
	assert.False(t, doc.ExtractedValues["LDL"].IsAbnormal,
		"open-ended reference ranges are left to the model's judgment")
}

func TestIngestBackfillKeepsModelJudgment(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{
		DocumentType: document.TypeLabReport,
		Timestamp:    "2024-03-01",
		ExtractedValues: map[string]document.ExtractedValue{
			// The model flagged an in-range value; the back-fill only adds
			// flags, it never removes them.
			"Glucose": {Value: 90.0, Unit: "mg/dL", Ref: "70 - 100", IsAbnormal: true},
			"Notes":   {Value: "clear", Ref: "70 - 100", IsAbnormal: false},
		},
	}})

	doc, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	require.NoError(t, err)

	assert.True(t, doc.ExtractedValues["Glucose"].IsAbnormal)
	assert.False(t, doc.ExtractedValues["Notes"].IsAbnormal, "non-numeric values are never touched")
}

func TestIngestExtractionFailureCommitsNothing(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{err: ai.ErrExtractionFailed})

	_, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	require.ErrorIs(t, err, ai.ErrExtractionFailed)

	n, err := fx.docs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "a failed extraction must leave the store untouched")
}

func TestIngestReceiptGetsInitialClaimStatus(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{
		DocumentType: document.TypeReceipt,
		Timestamp:    "2024-05-10",
		BillingInfo:  &document.BillingInfo{TotalAmount: 120},
	}})

	doc, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	require.NoError(t, err)
	assert.Equal(t, document.ClaimNotSubmitted, doc.ClaimStatus)
}

func TestIngestNonReceiptHasNoClaimStatus(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{
		DocumentType: document.TypeLabReport,
		Timestamp:    "2024-05-10",
	}})

	doc, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	require.NoError(t, err)
	assert.Empty(t, doc.ClaimStatus)
}

func TestIngestTimestampFallsBackToNow(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{
		DocumentType: document.TypeClinicalNote,
		Timestamp:    "sometime last week",
	}})

	before := time.Now().UTC()
	doc, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File: validFile(), FamilyMemberID: fx.member.ID, UserID: fx.userID,
	})
	after := time.Now().UTC()
	require.NoError(t, err)

	assert.False(t, doc.ClinicalTimestamp.Before(before))
	assert.False(t, doc.ClinicalTimestamp.After(after))
}

func TestIngestParsesKnownTimestampLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024/03/01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"01-03-2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got := normalizeTimestamp(tc.raw)
		assert.Equal(t, tc.want, got, "layout %q", tc.raw)
	}
}

func TestIngestRejectsEmptyUpload(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{}})

	_, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File:           ai.File{Name: "report.pdf"},
		FamilyMemberID: fx.member.ID,
		UserID:         fx.userID,
	})

	var validErr *ValidationError
	require.ErrorAs(t, err, &validErr)
	assert.Contains(t, validErr.Fields, "file is empty")
}

func TestIngestForbiddenForForeignFamilyMember(t *testing.T) {
	fx := newIngestionFixture(t, &stubExtractor{extraction: &ai.Extraction{DocumentType: document.TypeLabReport}})

	_, err := fx.svc.Ingest(context.Background(), &IngestCommand{
		File:           validFile(),
		FamilyMemberID: fx.member.ID,
		UserID:         uuid.New(),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}
