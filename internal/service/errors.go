package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type AuditEntry struct {
	UserID       *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
	StatusCode   int
	Changes      string
}

// Ownership mirrors the shared demo owner rule: a configured demo owner id
// counts as a second legitimate owner for every caller. A nil DemoOwnerID
// disables the special case and requires one real owner.
type Ownership struct {
	DemoOwnerID *uuid.UUID
}

func (o Ownership) Allows(owner, caller uuid.UUID) bool {
	if owner == caller {
		return true
	}
	return o.DemoOwnerID != nil && owner == *o.DemoOwnerID
}
