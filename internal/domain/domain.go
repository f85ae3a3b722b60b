package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the opaque authenticated-user handle issued by the external
// identity provider. Sign-in, sign-up, and sign-out are delegated entirely;
// the service only verifies the provider's token and trusts these fields.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

type AuditAction string

const (
	ActionCreate  AuditAction = "create"
	ActionRead    AuditAction = "read"
	ActionUpdate  AuditAction = "update"
	ActionDelete  AuditAction = "delete"
	ActionIngest  AuditAction = "ingest"
	ActionGrant   AuditAction = "grant"
	ActionRevoke  AuditAction = "revoke"
	ActionResolve AuditAction = "resolve"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who. UserID is nil for anonymous doctor-view resolutions.
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	IPAddress string     `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID  string `gorm:"column:request_id;type:varchar(50);index"`
	StatusCode int    `gorm:"column:status_code"`

	Changes string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}
