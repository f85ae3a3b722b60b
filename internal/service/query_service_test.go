package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/repository/memory"
)

func seedQueryDocs(t *testing.T, docs *memory.DocumentRepository, userID uuid.UUID, memberA, memberB uuid.UUID) {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := []*document.HealthDocument{
		{UserID: userID, FamilyMemberID: memberA, FileName: "oldest.pdf", Type: document.TypeLabReport, ClinicalTimestamp: base.AddDate(0, -2, 0)},
		{UserID: userID, FamilyMemberID: memberB, FileName: "receipt.pdf", Type: document.TypeReceipt, ClinicalTimestamp: base.AddDate(0, -1, 0), ClaimStatus: document.ClaimNotSubmitted},
		{UserID: userID, FamilyMemberID: memberA, FileName: "tie_first.pdf", Type: document.TypeClinicalNote, ClinicalTimestamp: base},
		{UserID: userID, FamilyMemberID: memberA, FileName: "tie_second.pdf", Type: document.TypePrescription, ClinicalTimestamp: base},
	}
	for _, d := range rows {
		require.NoError(t, docs.Create(context.Background(), d))
	}
}

func TestListDocumentsNewestFirstStableTies(t *testing.T) {
	userID := uuid.New()
	memberA, memberB := uuid.New(), uuid.New()
	docs := memory.NewDocumentRepository(nil)
	seedQueryDocs(t, docs, userID, memberA, memberB)

	svc := NewQueryService(docs, Ownership{})
	got, err := svc.ListDocuments(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.FileName
	}
	assert.Equal(t, []string{"tie_first.pdf", "tie_second.pdf", "receipt.pdf", "oldest.pdf"}, names,
		"descending clinical timestamp with ties kept in insertion order")
}

func TestListDocumentsFiltersCompose(t *testing.T) {
	userID := uuid.New()
	memberA, memberB := uuid.New(), uuid.New()
	docs := memory.NewDocumentRepository(nil)
	seedQueryDocs(t, docs, userID, memberA, memberB)

	svc := NewQueryService(docs, Ownership{})

	byMember, err := svc.ByFamilyMember(context.Background(), userID, memberB)
	require.NoError(t, err)
	require.Len(t, byMember, 1)
	assert.Equal(t, "receipt.pdf", byMember[0].FileName)

	byType, err := svc.ByType(context.Background(), userID, document.TypeReceipt)
	require.NoError(t, err)
	require.Len(t, byType, 1)

	receiptType := document.TypeReceipt
	both, err := svc.ListDocuments(context.Background(), userID, &memberA, &receiptType)
	require.NoError(t, err)
	assert.Empty(t, both, "filters are a conjunction: member A has no receipts")
}

func TestListDocumentsRejectsUnknownType(t *testing.T) {
	svc := NewQueryService(memory.NewDocumentRepository(nil), Ownership{})

	bogus := document.DocumentType("Selfie")
	_, err := svc.ListDocuments(context.Background(), uuid.New(), nil, &bogus)
	assert.ErrorIs(t, err, document.ErrInvalidDocumentType)
}

func TestGetDocumentEnforcesOwnership(t *testing.T) {
	userID := uuid.New()
	docs := memory.NewDocumentRepository(nil)
	doc := &document.HealthDocument{UserID: userID, FamilyMemberID: uuid.New(), FileName: "mine.pdf"}
	require.NoError(t, docs.Create(context.Background(), doc))

	svc := NewQueryService(docs, Ownership{})

	got, err := svc.GetDocument(context.Background(), doc.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "mine.pdf", got.FileName)

	_, err = svc.GetDocument(context.Background(), doc.ID, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetDocument(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestDemoOwnerDocumentsVisibleToAnyCaller(t *testing.T) {
	demoOwner := uuid.New()
	docs := memory.NewDocumentRepository(&demoOwner)
	require.NoError(t, docs.Create(context.Background(), &document.HealthDocument{
		UserID:         demoOwner,
		FamilyMemberID: uuid.New(),
		FileName:       "shared_demo.pdf",
		Type:           document.TypeLabReport,
	}))

	svc := NewQueryService(docs, Ownership{DemoOwnerID: &demoOwner})

	got, err := svc.ListDocuments(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "shared_demo.pdf", got[0].FileName)
}
