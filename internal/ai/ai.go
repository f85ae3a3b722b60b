// Package ai implements the generative-AI collaborators: document
// extraction, cross-document insights, chat, translation, and the
// summary/claim helpers. All document understanding is delegated to the
// external model; callers treat this package as an opaque service with the
// contracts below.
package ai

import (
	"errors"
	"time"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insight"
)

// ErrExtractionFailed indicates the model could not parse an upload
// (unreadable or unsupported format). Surfaced to the caller verbatim;
// nothing is committed on this error.
var ErrExtractionFailed = errors.New("the AI failed to analyze the document; it might be unreadable or in an unsupported format")

// File is an uploaded document handed to the extraction collaborator.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Extraction is the structured result of analyzing one document. Timestamp
// is kept as the raw string the model returned; the ingestion pipeline owns
// normalization.
type Extraction struct {
	DocumentType    document.DocumentType               `json:"documentType"`
	ReportType      string                              `json:"reportType"`
	Hospital        string                              `json:"hospital"`
	Timestamp       string                              `json:"timestamp"`
	ExtractedValues map[string]document.ExtractedValue  `json:"extractedValues,omitempty"`
	BillingInfo     *document.BillingInfo               `json:"billingInfo,omitempty"`
	Diagnosis       []string                            `json:"diagnosis,omitempty"`
	Medications     []string                            `json:"medications,omitempty"`
	Abnormalities   []string                            `json:"abnormalities,omitempty"`
	PatientSummary  string                              `json:"patientSummary"`
	DoctorSummary   string                              `json:"doctorSummary"`
}

// RawInsight is one insight as returned by the model, before the
// orchestrator assigns identity.
type RawInsight struct {
	Category       insight.Category `json:"category"`
	Severity       insight.Severity `json:"severity"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Recommendation string           `json:"recommendation"`
}

// InsightReport is the model's answer to an insight-generation request:
// an optional vitals snapshot plus up to a handful of insights.
type InsightReport struct {
	Vitals   map[string]insight.VitalReading `json:"vitals,omitempty"`
	Insights []RawInsight                    `json:"insights"`
}

// DocumentContext is the trimmed projection of a document sent to the model
// for insights, chat, and summaries. Raw summaries and file bytes are not
// re-sent.
type DocumentContext struct {
	Date          time.Time                          `json:"date"`
	Type          document.DocumentType              `json:"type"`
	Hospital      string                             `json:"hospital,omitempty"`
	ReportType    string                             `json:"reportType,omitempty"`
	Diagnoses     []string                           `json:"diagnoses,omitempty"`
	Medications   []string                           `json:"medications,omitempty"`
	LabValues     map[string]document.ExtractedValue `json:"labValues,omitempty"`
	Abnormalities []string                           `json:"abnormalities,omitempty"`
	Summary       string                             `json:"summary,omitempty"`
}

// ContextFromDocuments projects documents into the shape shared by all
// cross-document prompts.
func ContextFromDocuments(docs []*document.HealthDocument) []DocumentContext {
	out := make([]DocumentContext, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentContext{
			Date:          d.ClinicalTimestamp,
			Type:          d.Type,
			Hospital:      d.Hospital,
			ReportType:    d.ReportType,
			Diagnoses:     d.Diagnosis,
			Medications:   d.Medications,
			LabValues:     d.ExtractedValues,
			Abnormalities: d.Abnormalities,
			Summary:       d.DoctorSummary,
		})
	}
	return out
}
