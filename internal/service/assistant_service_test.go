package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insight"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
)

type stubCollaborator struct {
	report       *ai.InsightReport
	reportErr    error
	chatReply    string
	chatErr      error
	translateErr error
	summary      string
	summaryErr   error
}

func (s *stubCollaborator) GenerateInsights(_ context.Context, _ []ai.DocumentContext) (*ai.InsightReport, error) {
	return s.report, s.reportErr
}

func (s *stubCollaborator) Chat(_ context.Context, _ string, _ []ai.DocumentContext) (string, error) {
	return s.chatReply, s.chatErr
}

func (s *stubCollaborator) Translate(_ context.Context, text, _ string) (string, error) {
	if s.translateErr != nil {
		return "", s.translateErr
	}
	return "übersetzt: " + text, nil
}

func (s *stubCollaborator) VisitSummary(_ context.Context, _ []ai.DocumentContext) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubCollaborator) AnalyzeBill(_ context.Context, _ *document.HealthDocument, _ *insurance.Policy) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubCollaborator) DraftAppeal(_ context.Context, _ string, _ *document.HealthDocument, _ *insurance.Policy) (string, error) {
	return s.summary, s.summaryErr
}

func newAssistant(stub *stubCollaborator) *AssistantService {
	return NewAssistantService(stub, stub, stub, stub, idgen.New(), zap.NewNop())
}

func someDocs() []*document.HealthDocument {
	return []*document.HealthDocument{
		{ID: uuid.New(), Type: document.TypeLabReport, FileName: "labs.pdf"},
	}
}

func TestHealthInsightsPrependsVitalsSummary(t *testing.T) {
	stub := &stubCollaborator{report: &ai.InsightReport{
		Vitals: map[string]insight.VitalReading{
			"LDL": {Value: 130.0, Unit: "mg/dL"},
		},
		Insights: []ai.RawInsight{
			{Category: insight.CategoryTrend, Severity: insight.SeverityMedium, Title: "Cholesterol rising"},
			{Category: insight.CategoryReminder, Severity: insight.SeverityLow, Title: "Annual checkup due"},
		},
	}}

	got := newAssistant(stub).HealthInsights(context.Background(), someDocs())

	require.Len(t, got, 3)
	assert.Equal(t, insight.VitalsSummaryID, got[0].ID)
	assert.Equal(t, insight.CategoryObservation, got[0].Category)
	assert.Equal(t, insight.SeverityLow, got[0].Severity)
	assert.Equal(t, "Latest Health Vitals", got[0].Title)
	assert.NotEmpty(t, got[0].Vitals)

	for _, in := range got[1:] {
		assert.True(t, strings.HasPrefix(in.ID, "insight-"), "generated insights get fresh prefixed ids")
		assert.Empty(t, in.Vitals)
	}
}

func TestHealthInsightsNoVitalsNoSyntheticEntry(t *testing.T) {
	stub := &stubCollaborator{report: &ai.InsightReport{
		Insights: []ai.RawInsight{{Category: insight.CategoryTrend, Title: "Something"}},
	}}

	got := newAssistant(stub).HealthInsights(context.Background(), someDocs())
	require.Len(t, got, 1)
	assert.NotEqual(t, insight.VitalsSummaryID, got[0].ID)
}

func TestHealthInsightsDegradesToEmpty(t *testing.T) {
	svc := newAssistant(&stubCollaborator{reportErr: errors.New("model overloaded")})

	got := svc.HealthInsights(context.Background(), someDocs())
	assert.NotNil(t, got)
	assert.Empty(t, got, "collaborator failures degrade to an empty list, never an error")

	got = svc.HealthInsights(context.Background(), nil)
	assert.Empty(t, got, "no documents means nothing to analyze")
}

func TestTranslateInsightsPreservesIdentityAndOrder(t *testing.T) {
	svc := newAssistant(&stubCollaborator{})

	in := []insight.HealthInsight{
		{ID: insight.VitalsSummaryID, Title: "Latest Health Vitals", Description: "Snapshot", Recommendation: "Monitor",
			Vitals: map[string]insight.VitalReading{"BP": {Value: "120/80"}}},
		{ID: "insight-abc", Title: "Trend", Description: "Up", Recommendation: "Exercise"},
	}

	got := svc.TranslateInsights(context.Background(), in, "German")

	require.Len(t, got, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, got[i].ID, "ids survive translation")
		assert.Equal(t, in[i].Category, got[i].Category)
	}
	assert.Equal(t, "übersetzt: Trend", got[1].Title)
	assert.Equal(t, in[0].Vitals, got[0].Vitals, "vitals are data, not text, and are never translated")
}

func TestTranslateInsightsFailedFieldGetsPlaceholder(t *testing.T) {
	svc := newAssistant(&stubCollaborator{translateErr: errors.New("quota exceeded")})

	got := svc.TranslateInsights(context.Background(), []insight.HealthInsight{
		{ID: "insight-abc", Title: "Trend", Description: "", Recommendation: "Exercise"},
	}, "Spanish")

	require.Len(t, got, 1)
	assert.Equal(t, "[Translation to Spanish failed]", got[0].Title)
	assert.Empty(t, got[0].Description, "empty fields stay empty")
	assert.Equal(t, "[Translation to Spanish failed]", got[0].Recommendation)
}

func TestChatResponseDegrades(t *testing.T) {
	svc := newAssistant(&stubCollaborator{chatErr: errors.New("timeout")})
	assert.Equal(t, chatUnavailableMsg, svc.ChatResponse(context.Background(), "what changed?", someDocs()))

	svc = newAssistant(&stubCollaborator{chatReply: "Your LDL went up."})
	assert.Equal(t, chatNoDocumentsMsg, svc.ChatResponse(context.Background(), "what changed?", nil))
	assert.Equal(t, "Your LDL went up.", svc.ChatResponse(context.Background(), "what changed?", someDocs()))
}

func TestVisitSummaryDegrades(t *testing.T) {
	svc := newAssistant(&stubCollaborator{summaryErr: errors.New("timeout")})
	assert.Equal(t, summaryUnavailableMsg, svc.VisitSummary(context.Background(), someDocs()))
}

func TestAnalyzeBillRequiresReceipt(t *testing.T) {
	svc := newAssistant(&stubCollaborator{summary: "Looks covered."})

	lab := &document.HealthDocument{Type: document.TypeLabReport}
	_, err := svc.AnalyzeBill(context.Background(), lab, nil)
	assert.ErrorIs(t, err, document.ErrNotAReceipt)

	receipt := &document.HealthDocument{Type: document.TypeReceipt, ClaimStatus: document.ClaimNotSubmitted}
	analysis, err := svc.AnalyzeBill(context.Background(), receipt, nil)
	require.NoError(t, err)
	assert.Equal(t, "Looks covered.", analysis)
}

func TestDraftAppealRequiresDeniedClaim(t *testing.T) {
	svc := newAssistant(&stubCollaborator{summary: "Dear claims department,"})

	submitted := &document.HealthDocument{Type: document.TypeReceipt, ClaimStatus: document.ClaimSubmitted}
	_, err := svc.DraftAppeal(context.Background(), "Dhanya", submitted, nil)
	assert.ErrorIs(t, err, document.ErrClaimTransition)

	denied := &document.HealthDocument{Type: document.TypeReceipt, ClaimStatus: document.ClaimDenied}
	letter, err := svc.DraftAppeal(context.Background(), "Dhanya", denied, nil)
	require.NoError(t, err)
	assert.Equal(t, "Dear claims department,", letter)
}
