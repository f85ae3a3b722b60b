package doctor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Doctor is an external physician granted read-only access to a subset of
// the family hub through an opaque share token. The raw token is stored in
// its own column and resolved by exact equality; the access link is a
// convenience URL embedding the same token.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Hospital  string    `gorm:"column:hospital;type:varchar(255)" json:"hospital"`
	Specialty string    `gorm:"column:specialty;type:varchar(100)" json:"specialty"`

	AccessToken string `gorm:"column:access_token;type:varchar(64);uniqueIndex;not null" json:"-"`
	AccessLink  string `gorm:"column:access_link;type:text;not null" json:"access_link"`

	FamilyMemberIDs []uuid.UUID `gorm:"column:family_member_ids;serializer:json" json:"family_member_ids"`
}

func (Doctor) TableName() string {
	return "sharing.doctors"
}

// GrantFamilyMembers unions ids into the authorized set, preserving order of
// first appearance. Existing token and link are untouched.
func (d *Doctor) GrantFamilyMembers(ids []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(d.FamilyMemberIDs))
	for _, id := range d.FamilyMemberIDs {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			d.FamilyMemberIDs = append(d.FamilyMemberIDs, id)
		}
	}
}

func (d *Doctor) Authorizes(familyMemberID uuid.UUID) bool {
	for _, id := range d.FamilyMemberIDs {
		if id == familyMemberID {
			return true
		}
	}
	return false
}

// Profile identifies a doctor as listed in the directory, before any access
// has been granted.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hospital  string    `json:"hospital"`
	Specialty string    `json:"specialty"`
}

// MatchesQuery reports whether the profile matches a case-insensitive
// substring search on name or hospital.
func (p Profile) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Hospital), q)
}

type GrantAccessCommand struct {
	UserID          uuid.UUID
	Profile         Profile
	FamilyMemberIDs []uuid.UUID
}
