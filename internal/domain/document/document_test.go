package document

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClaimStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ClaimStatus
		ok       bool
	}{
		{ClaimNotSubmitted, ClaimSubmitted, true},
		{ClaimNotSubmitted, ClaimApproved, false},
		{ClaimSubmitted, ClaimApproved, true},
		{ClaimSubmitted, ClaimDenied, true},
		{ClaimSubmitted, ClaimAppealed, false},
		{ClaimDenied, ClaimAppealed, true},
		{ClaimDenied, ClaimApproved, false},
		{ClaimAppealed, ClaimApproved, true},
		{ClaimAppealed, ClaimDenied, true},
		{ClaimApproved, ClaimDenied, false},
		{ClaimApproved, ClaimSubmitted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDocumentTypeValidation(t *testing.T) {
	for _, valid := range []DocumentType{
		TypeLabReport, TypePrescription, TypeReceipt, TypeClinicalNote,
		TypeScanReport, TypeInsurancePolicy, TypeClaimDocument, TypeUnknown,
	} {
		assert.True(t, valid.IsValid(), string(valid))
	}
	assert.False(t, DocumentType("Selfie").IsValid())
	assert.False(t, DocumentType("").IsValid())
}

func TestListQueryMatchesConjunction(t *testing.T) {
	userID := uuid.New()
	memberID := uuid.New()
	doc := &HealthDocument{UserID: userID, FamilyMemberID: memberID, Type: TypeReceipt}

	receipt := TypeReceipt
	lab := TypeLabReport
	otherMember := uuid.New()

	assert.True(t, (&ListDocumentsQuery{}).Matches(doc), "empty query matches everything")
	assert.True(t, (&ListDocumentsQuery{UserID: &userID, FamilyMemberID: &memberID, Type: &receipt}).Matches(doc))
	assert.False(t, (&ListDocumentsQuery{UserID: &userID, Type: &lab}).Matches(doc), "one failing predicate rejects")
	assert.False(t, (&ListDocumentsQuery{FamilyMemberID: &otherMember}).Matches(doc))

	assert.True(t, (&ListDocumentsQuery{FamilyMemberIDs: []uuid.UUID{otherMember, memberID}}).Matches(doc))
	assert.False(t, (&ListDocumentsQuery{FamilyMemberIDs: []uuid.UUID{otherMember}}).Matches(doc))
}
