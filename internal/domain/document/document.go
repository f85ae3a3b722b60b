package document

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	TypeLabReport       DocumentType = "Lab Report"
	TypePrescription    DocumentType = "Prescription"
	TypeReceipt         DocumentType = "Receipt"
	TypeClinicalNote    DocumentType = "Clinical Note"
	TypeScanReport      DocumentType = "Scan Report"
	TypeInsurancePolicy DocumentType = "Insurance Policy"
	TypeClaimDocument   DocumentType = "Claim Document"
	TypeUnknown         DocumentType = "Unknown"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case TypeLabReport, TypePrescription, TypeReceipt, TypeClinicalNote,
		TypeScanReport, TypeInsurancePolicy, TypeClaimDocument, TypeUnknown:
		return true
	}
	return false
}

// ClaimStatus is the insurance-adjudication state of a billing document.
// Only Receipt-type documents carry a claim status.
type ClaimStatus string

const (
	ClaimNotSubmitted ClaimStatus = "Not Submitted"
	ClaimSubmitted    ClaimStatus = "Submitted"
	ClaimApproved     ClaimStatus = "Approved"
	ClaimDenied       ClaimStatus = "Denied"
	ClaimAppealed     ClaimStatus = "Appealed"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimNotSubmitted, ClaimSubmitted, ClaimApproved, ClaimDenied, ClaimAppealed:
		return true
	}
	return false
}

// Transition possibilities:
//
//	not submitted → submitted
//	submitted     → approved | denied
//	denied        → appealed
//	appealed      → approved | denied
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	switch s {
	case ClaimNotSubmitted:
		return next == ClaimSubmitted
	case ClaimSubmitted:
		return next == ClaimApproved || next == ClaimDenied
	case ClaimDenied:
		return next == ClaimAppealed
	case ClaimAppealed:
		return next == ClaimApproved || next == ClaimDenied
	}
	return false
}

// ExtractedValue is a single lab measurement pulled out of a report.
type ExtractedValue struct {
	Value      any    `json:"value"` // numeric when the AI could parse one
	Unit       string `json:"unit"`
	Ref        string `json:"ref"` // textual reference range, e.g. "70 - 200" or "<100"
	IsAbnormal bool   `json:"is_abnormal"`
}

type BillingItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type BillingInfo struct {
	TotalAmount float64       `json:"total_amount"`
	Items       []BillingItem `json:"items"`
}

// HealthDocument is an uploaded medical record plus its AI-extracted
// structured data. UploadedAt is ingestion time; ClinicalTimestamp is the
// clinical event time and drives all ordering.
type HealthDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_documents_owner" json:"user_id"`
	FamilyMemberID uuid.UUID `gorm:"column:family_member_id;type:uuid;not null;index:idx_documents_owner" json:"family_member_id"`

	FileName   string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	UploadedAt time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`

	Type       DocumentType `gorm:"column:type;type:varchar(30);not null;index" json:"document_type"`
	ReportType string       `gorm:"column:report_type;type:varchar(255)" json:"report_type"`
	Hospital   string       `gorm:"column:hospital;type:varchar(255)" json:"hospital"`

	ClinicalTimestamp time.Time `gorm:"column:clinical_timestamp;not null;index" json:"timestamp"`

	ExtractedValues map[string]ExtractedValue `gorm:"column:extracted_values;serializer:json" json:"extracted_values,omitempty"`
	BillingInfo     *BillingInfo              `gorm:"column:billing_info;serializer:json" json:"billing_info,omitempty"`
	Diagnosis       []string                  `gorm:"column:diagnosis;serializer:json" json:"diagnosis,omitempty"`
	Medications     []string                  `gorm:"column:medications;serializer:json" json:"medications,omitempty"`
	Abnormalities   []string                  `gorm:"column:abnormalities;serializer:json" json:"abnormalities,omitempty"`

	PatientSummary string `gorm:"column:patient_summary;type:text" json:"patient_summary"`
	DoctorSummary  string `gorm:"column:doctor_summary;type:text" json:"doctor_summary"`

	// Empty unless Type == Receipt.
	ClaimStatus ClaimStatus `gorm:"column:claim_status;type:varchar(20)" json:"claim_status,omitempty"`
}

func (HealthDocument) TableName() string {
	return "records.documents"
}

func (d *HealthDocument) IsReceipt() bool {
	return d.Type == TypeReceipt
}

// ListDocumentsQuery composes filters by simple predicate conjunction.
// Results are always ordered by clinical timestamp descending, ties broken
// by insertion order.
type ListDocumentsQuery struct {
	UserID          *uuid.UUID
	FamilyMemberID  *uuid.UUID
	FamilyMemberIDs []uuid.UUID // doctor-scoped views; ignored when empty
	Type            *DocumentType
}

func (q *ListDocumentsQuery) Matches(d *HealthDocument) bool {
	if q.UserID != nil && d.UserID != *q.UserID {
		return false
	}
	if q.FamilyMemberID != nil && d.FamilyMemberID != *q.FamilyMemberID {
		return false
	}
	if len(q.FamilyMemberIDs) > 0 {
		found := false
		for _, id := range q.FamilyMemberIDs {
			if d.FamilyMemberID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Type != nil && d.Type != *q.Type {
		return false
	}
	return true
}
