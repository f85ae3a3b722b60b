package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
)

func newTestDoctor(userID uuid.UUID, token string) *doctor.Doctor {
	return &doctor.Doctor{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            "Dr. Test",
		AccessToken:     token,
		AccessLink:      "https://example.test/doctor-view/" + token,
		FamilyMemberIDs: []uuid.UUID{uuid.New()},
	}
}

func TestDoctorTokenLookupIsExact(t *testing.T) {
	repo := NewDoctorRepository(nil)
	d := newTestDoctor(uuid.New(), "aabbccddeeff00112233445566778899")
	require.NoError(t, repo.Create(context.Background(), d))

	got, err := repo.GetByToken(context.Background(), d.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	// Prefixes, suffixes, and the full link must not resolve.
	for _, probe := range []string{
		d.AccessToken[:16],
		d.AccessToken + "00",
		d.AccessLink,
		"",
	} {
		_, err := repo.GetByToken(context.Background(), probe)
		assert.ErrorIs(t, err, doctor.ErrDoctorNotFound, "probe %q", probe)
	}
}

func TestDoctorDeleteStopsTokenResolution(t *testing.T) {
	repo := NewDoctorRepository(nil)
	d := newTestDoctor(uuid.New(), "00112233445566778899aabbccddeeff")
	require.NoError(t, repo.Create(context.Background(), d))

	require.NoError(t, repo.Delete(context.Background(), d.ID))

	_, err := repo.GetByID(context.Background(), d.ID)
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
	_, err = repo.GetByToken(context.Background(), d.AccessToken)
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), d.ID), doctor.ErrDoctorNotFound)
}

func TestDoctorUpdateReindexesToken(t *testing.T) {
	repo := NewDoctorRepository(nil)
	d := newTestDoctor(uuid.New(), "11111111111111111111111111111111")
	require.NoError(t, repo.Create(context.Background(), d))

	d.AccessToken = "22222222222222222222222222222222"
	require.NoError(t, repo.Update(context.Background(), d))

	_, err := repo.GetByToken(context.Background(), "11111111111111111111111111111111")
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)

	got, err := repo.GetByToken(context.Background(), "22222222222222222222222222222222")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestDoctorListByUserInsertionOrder(t *testing.T) {
	userID := uuid.New()
	repo := NewDoctorRepository(nil)

	first := newTestDoctor(userID, "33333333333333333333333333333333")
	second := newTestDoctor(userID, "44444444444444444444444444444444")
	other := newTestDoctor(uuid.New(), "55555555555555555555555555555555")
	for _, d := range []*doctor.Doctor{first, other, second} {
		require.NoError(t, repo.Create(context.Background(), d))
	}

	got, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}
