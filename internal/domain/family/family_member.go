package family

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Member is one person in the user's family hub. Members are created by
// explicit user action and are never updated or deleted.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name         string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Relationship string    `gorm:"column:relationship;type:varchar(100)" json:"relationship"`
	PhotoURL     string    `gorm:"column:photo_url;type:text" json:"photo_url"`
}

func (Member) TableName() string {
	return "records.family_members"
}

// DefaultPhotoURL derives a stable avatar for members added without a photo.
func DefaultPhotoURL(name string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", strings.ReplaceAll(name, " ", ""))
}

type AddMemberCommand struct {
	UserID       uuid.UUID
	Name         string
	Relationship string
	PhotoURL     string
}
