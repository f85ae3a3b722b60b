package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
)

func TestDocumentListOrdering(t *testing.T) {
	repo := NewDocumentRepository(nil)
	userID := uuid.New()
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	for _, d := range []*document.HealthDocument{
		{UserID: userID, FamilyMemberID: uuid.New(), FileName: "first_tie.pdf", ClinicalTimestamp: base},
		{UserID: userID, FamilyMemberID: uuid.New(), FileName: "newer.pdf", ClinicalTimestamp: base.Add(24 * time.Hour)},
		{UserID: userID, FamilyMemberID: uuid.New(), FileName: "second_tie.pdf", ClinicalTimestamp: base},
	} {
		require.NoError(t, repo.Create(context.Background(), d))
	}

	got, err := repo.List(context.Background(), &document.ListDocumentsQuery{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "newer.pdf", got[0].FileName)
	assert.Equal(t, "first_tie.pdf", got[1].FileName, "equal timestamps keep insertion order")
	assert.Equal(t, "second_tie.pdf", got[2].FileName)
}

func TestDocumentListDualOwnership(t *testing.T) {
	demoOwner := uuid.New()
	repo := NewDocumentRepository(&demoOwner)
	caller := uuid.New()

	require.NoError(t, repo.Create(context.Background(), &document.HealthDocument{
		UserID: demoOwner, FamilyMemberID: uuid.New(), FileName: "demo.pdf",
	}))
	require.NoError(t, repo.Create(context.Background(), &document.HealthDocument{
		UserID: caller, FamilyMemberID: uuid.New(), FileName: "own.pdf",
	}))
	require.NoError(t, repo.Create(context.Background(), &document.HealthDocument{
		UserID: uuid.New(), FamilyMemberID: uuid.New(), FileName: "foreign.pdf",
	}))

	got, err := repo.List(context.Background(), &document.ListDocumentsQuery{UserID: &caller})
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.FileName
	}
	assert.ElementsMatch(t, []string{"demo.pdf", "own.pdf"}, names)
}

func TestDocumentListReturnsCopies(t *testing.T) {
	repo := NewDocumentRepository(nil)
	userID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &document.HealthDocument{
		UserID: userID, FamilyMemberID: uuid.New(), FileName: "orig.pdf",
	}))

	got, err := repo.List(context.Background(), &document.ListDocumentsQuery{UserID: &userID})
	require.NoError(t, err)
	got[0].FileName = "mutated.pdf"

	again, err := repo.List(context.Background(), &document.ListDocumentsQuery{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, "orig.pdf", again[0].FileName)
}

func TestDocumentUpdateClaimStatus(t *testing.T) {
	repo := NewDocumentRepository(nil)
	d := &document.HealthDocument{
		UserID: uuid.New(), FamilyMemberID: uuid.New(),
		Type: document.TypeReceipt, ClaimStatus: document.ClaimNotSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), d))

	require.NoError(t, repo.UpdateClaimStatus(context.Background(), d.ID, document.ClaimSubmitted))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, document.ClaimSubmitted, got.ClaimStatus)

	err = repo.UpdateClaimStatus(context.Background(), uuid.New(), document.ClaimSubmitted)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}
