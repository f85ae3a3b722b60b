package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/ai"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insight"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
)

type InsightGenerator interface {
	GenerateInsights(ctx context.Context, docs []ai.DocumentContext) (*ai.InsightReport, error)
}

type ChatClient interface {
	Chat(ctx context.Context, message string, docs []ai.DocumentContext) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

type SummaryClient interface {
	VisitSummary(ctx context.Context, docs []ai.DocumentContext) (string, error)
	AnalyzeBill(ctx context.Context, bill *document.HealthDocument, policy *insurance.Policy) (string, error)
	DraftAppeal(ctx context.Context, holderName string, bill *document.HealthDocument, policy *insurance.Policy) (string, error)
}

// Placeholder strings returned when a collaborator call fails. The view
// stays interactive; the user may simply retry.
const (
	chatUnavailableMsg      = "I'm having trouble connecting to my AI brain right now. Please try again in a moment."
	chatNoDocumentsMsg      = "I don't have any documents to analyze yet. Please upload a medical document first."
	summaryUnavailableMsg   = "Could not generate summary at this time. Please try again later."
	translationFailedFmtMsg = "[Translation to %s failed]"
)

// AssistantService forwards document sets to the AI collaborators and
// returns their output untouched, wrapping only the vitals snapshot. Every
// call re-queries the collaborator; nothing is cached.
type AssistantService struct {
	insights   InsightGenerator
	chat       ChatClient
	translator Translator
	summaries  SummaryClient
	idgen      idgen.Generator
	log        *zap.Logger
}

func NewAssistantService(
	insights InsightGenerator,
	chat ChatClient,
	translator Translator,
	summaries SummaryClient,
	gen idgen.Generator,
	log *zap.Logger,
) *AssistantService {
	return &AssistantService{
		insights:   insights,
		chat:       chat,
		translator: translator,
		summaries:  summaries,
		idgen:      gen,
		log:        log,
	}
}

// HealthInsights generates insights over a document set. A collaborator
// failure degrades to an empty list, never an error. When the collaborator
// returns a vitals snapshot it is wrapped into a synthetic insight with the
// fixed id "vitals-summary" and prepended.
func (s *AssistantService) HealthInsights(ctx context.Context, docs []*document.HealthDocument) []insight.HealthInsight {
	if len(docs) == 0 {
		return []insight.HealthInsight{}
	}

	report, err := s.insights.GenerateInsights(ctx, ai.ContextFromDocuments(docs))
	if err != nil {
		s.log.Warn("insight generation failed", zap.Error(err))
		return []insight.HealthInsight{}
	}

	out := make([]insight.HealthInsight, 0, len(report.Insights)+1)
	if len(report.Vitals) > 0 {
		out = append(out, insight.HealthInsight{
			ID:             insight.VitalsSummaryID,
			Category:       insight.CategoryObservation,
			Severity:       insight.SeverityLow,
			Title:          "Latest Health Vitals",
			Description:    "A snapshot of your most recent key metrics.",
			Recommendation: "Monitor these values and discuss any concerns with your doctor.",
			Vitals:         report.Vitals,
		})
	}
	for _, raw := range report.Insights {
		out = append(out, insight.HealthInsight{
			ID:             "insight-" + s.idgen.NewID().String(),
			Category:       raw.Category,
			Severity:       raw.Severity,
			Title:          raw.Title,
			Description:    raw.Description,
			Recommendation: raw.Recommendation,
		})
	}
	return out
}

// TranslateInsights translates title, description, and recommendation of
// each insight in place, preserving identity, ordering, and vitals. A
// failed field keeps a placeholder instead of failing the whole list.
func (s *AssistantService) TranslateInsights(ctx context.Context, insights []insight.HealthInsight, targetLanguage string) []insight.HealthInsight {
	out := make([]insight.HealthInsight, len(insights))
	for i, in := range insights {
		in.Title = s.translateField(ctx, in.Title, targetLanguage)
		in.Description = s.translateField(ctx, in.Description, targetLanguage)
		in.Recommendation = s.translateField(ctx, in.Recommendation, targetLanguage)
		out[i] = in
	}
	return out
}

func (s *AssistantService) translateField(ctx context.Context, text, targetLanguage string) string {
	if text == "" {
		return text
	}
	translated, err := s.translator.Translate(ctx, text, targetLanguage)
	if err != nil {
		s.log.Warn("translation failed", zap.String("language", targetLanguage), zap.Error(err))
		return fmt.Sprintf(translationFailedFmtMsg, targetLanguage)
	}
	return translated
}

// ChatResponse answers a free-form question over the document set. Failures
// degrade to a placeholder string.
func (s *AssistantService) ChatResponse(ctx context.Context, message string, docs []*document.HealthDocument) string {
	if len(docs) == 0 {
		return chatNoDocumentsMsg
	}
	reply, err := s.chat.Chat(ctx, message, ai.ContextFromDocuments(docs))
	if err != nil {
		s.log.Warn("chat failed", zap.Error(err))
		return chatUnavailableMsg
	}
	return reply
}

// VisitSummary prepares the doctor's visit brief. Failures degrade to a
// placeholder string.
func (s *AssistantService) VisitSummary(ctx context.Context, docs []*document.HealthDocument) string {
	summary, err := s.summaries.VisitSummary(ctx, ai.ContextFromDocuments(docs))
	if err != nil {
		s.log.Warn("visit summary failed", zap.Error(err))
		return summaryUnavailableMsg
	}
	return summary
}

// AnalyzeBill produces the pre-claim analysis for a billing document.
func (s *AssistantService) AnalyzeBill(ctx context.Context, bill *document.HealthDocument, policy *insurance.Policy) (string, error) {
	if !bill.IsReceipt() {
		return "", document.ErrNotAReceipt
	}
	return s.summaries.AnalyzeBill(ctx, bill, policy)
}

// DraftAppeal drafts an appeal letter for a denied claim.
func (s *AssistantService) DraftAppeal(ctx context.Context, holderName string, bill *document.HealthDocument, policy *insurance.Policy) (string, error) {
	if !bill.IsReceipt() {
		return "", document.ErrNotAReceipt
	}
	if bill.ClaimStatus != document.ClaimDenied {
		return "", document.ErrClaimTransition
	}
	return s.summaries.DraftAppeal(ctx, holderName, bill, policy)
}
