package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/repository/memory"
)

type insuranceFixture struct {
	svc      *InsuranceService
	docs     *memory.DocumentRepository
	policies *memory.InsuranceRepository
	userID   uuid.UUID
}

func newInsuranceFixture(t *testing.T, ownership Ownership) *insuranceFixture {
	t.Helper()

	docs := memory.NewDocumentRepository(ownership.DemoOwnerID)
	policies := memory.NewInsuranceRepository()
	auditSvc := NewAuditService(memory.NewAuditRepository(), nil, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)

	return &insuranceFixture{
		svc:      NewInsuranceService(policies, docs, ownership, auditSvc, zap.NewNop()),
		docs:     docs,
		policies: policies,
		userID:   uuid.New(),
	}
}

func (fx *insuranceFixture) addReceipt(t *testing.T, status document.ClaimStatus) *document.HealthDocument {
	t.Helper()
	d := &document.HealthDocument{
		UserID:         fx.userID,
		FamilyMemberID: uuid.New(),
		FileName:       "bill.pdf",
		Type:           document.TypeReceipt,
		ClaimStatus:    status,
	}
	require.NoError(t, fx.docs.Create(context.Background(), d))
	return d
}

func TestClaimLifecycleTransitions(t *testing.T) {
	fx := newInsuranceFixture(t, Ownership{})

	d := fx.addReceipt(t, document.ClaimNotSubmitted)

	updated, err := fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, document.ClaimSubmitted, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, document.ClaimSubmitted, updated.ClaimStatus)

	updated, err = fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, document.ClaimDenied, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, document.ClaimDenied, updated.ClaimStatus)

	updated, err = fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, document.ClaimAppealed, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, document.ClaimAppealed, updated.ClaimStatus)

	updated, err = fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, document.ClaimApproved, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, document.ClaimApproved, updated.ClaimStatus)
}

func TestClaimIllegalTransitionsRejected(t *testing.T) {
	fx := newInsuranceFixture(t, Ownership{})

	cases := []struct {
		from, to document.ClaimStatus
	}{
		{document.ClaimNotSubmitted, document.ClaimApproved},
		{document.ClaimNotSubmitted, document.ClaimAppealed},
		{document.ClaimSubmitted, document.ClaimAppealed},
		{document.ClaimApproved, document.ClaimDenied},
		{document.ClaimDenied, document.ClaimSubmitted},
	}
	for _, tc := range cases {
		d := fx.addReceipt(t, tc.from)
		_, err := fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, tc.to, "127.0.0.1")
		assert.ErrorIs(t, err, document.ErrClaimTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestClaimStatusOnlyOnReceipts(t *testing.T) {
	fx := newInsuranceFixture(t, Ownership{})

	lab := &document.HealthDocument{
		UserID:         fx.userID,
		FamilyMemberID: uuid.New(),
		Type:           document.TypeLabReport,
	}
	require.NoError(t, fx.docs.Create(context.Background(), lab))

	_, err := fx.svc.UpdateClaimStatus(context.Background(), lab.ID, fx.userID, document.ClaimSubmitted, "127.0.0.1")
	assert.ErrorIs(t, err, document.ErrNotAReceipt)
}

func TestClaimStatusValidation(t *testing.T) {
	fx := newInsuranceFixture(t, Ownership{})
	d := fx.addReceipt(t, document.ClaimNotSubmitted)

	_, err := fx.svc.UpdateClaimStatus(context.Background(), d.ID, fx.userID, "Pending", "127.0.0.1")
	assert.ErrorIs(t, err, document.ErrInvalidClaimStatus)

	_, err = fx.svc.UpdateClaimStatus(context.Background(), d.ID, uuid.New(), document.ClaimSubmitted, "127.0.0.1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetPolicyFallsBackToDemoOwner(t *testing.T) {
	demoOwner := uuid.New()
	fx := newInsuranceFixture(t, Ownership{DemoOwnerID: &demoOwner})

	require.NoError(t, fx.policies.Upsert(context.Background(), &insurance.Policy{
		UserID:       demoOwner,
		ProviderName: "BlueShield Health",
		PolicyNumber: "BSH-2024-88341",
	}))

	p, err := fx.svc.GetPolicy(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "BlueShield Health", p.ProviderName)
}

func TestGetPolicyMissing(t *testing.T) {
	fx := newInsuranceFixture(t, Ownership{})

	_, err := fx.svc.GetPolicy(context.Background(), uuid.New())
	assert.ErrorIs(t, err, insurance.ErrPolicyNotFound)
}
