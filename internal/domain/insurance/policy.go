package insurance

import (
	"time"

	"github.com/google/uuid"
)

// CostShare tracks a deductible or out-of-pocket bucket against its limits.
type CostShare struct {
	Individual    float64 `json:"individual"`
	Family        float64 `json:"family"`
	IndividualMet float64 `json:"individual_met"`
	FamilyMet     float64 `json:"family_met"`
}

// CoPay is the fixed co-payment schedule by visit category.
type CoPay struct {
	Primary    float64 `json:"primary"`
	Specialist float64 `json:"specialist"`
	Emergency  float64 `json:"emergency"`
}

// Policy is the single insurance policy on file for a user.
type Policy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	ProviderName string    `gorm:"column:provider_name;type:varchar(255);not null" json:"provider_name"`
	PolicyNumber string    `gorm:"column:policy_number;type:varchar(100);not null" json:"policy_number"`

	Deductible     CostShare `gorm:"column:deductible;serializer:json" json:"deductible"`
	OutOfPocketMax CostShare `gorm:"column:out_of_pocket_max;serializer:json" json:"out_of_pocket_max"`
	CoPay          CoPay     `gorm:"column:co_pay;serializer:json" json:"co_pay"`
}

func (Policy) TableName() string {
	return "records.insurance_policies"
}
