package insight

// Insights are ephemeral AI-derived views over a document set. They are
// regenerated on every request and never persisted, so there is no
// repository here.

type Category string

const (
	CategoryTrend       Category = "Trend"
	CategoryInteraction Category = "Interaction"
	CategoryReminder    Category = "Reminder"
	CategoryObservation Category = "Observation"
	CategoryInsurance   Category = "Insurance"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// VitalReading is one entry in a vitals snapshot, e.g. "LDL": {140, "mg/dL"}.
type VitalReading struct {
	Value any    `json:"value"`
	Unit  string `json:"unit"`
}

// VitalsSummaryID is the fixed identity of the synthetic insight that wraps
// a vitals snapshot, so the presentation layer can special-case it.
const VitalsSummaryID = "vitals-summary"

type HealthInsight struct {
	ID             string                  `json:"id"`
	Category       Category                `json:"category"`
	Severity       Severity                `json:"severity"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Recommendation string                  `json:"recommendation"`
	Vitals         map[string]VitalReading `json:"vitals,omitempty"`
}
