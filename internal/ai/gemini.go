package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/config"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/metrics"
)

// GeminiClient calls the Gemini generateContent REST API directly. One
// client instance serves all collaborator roles.
type GeminiClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
	collector  *metrics.Collector
	log        *zap.Logger
}

func NewGeminiClient(cfg config.AIConfig, collector *metrics.Collector, log *zap.Logger) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		collector:  collector,
		log:        log,
	}
}

// --- wire types for the generateContent endpoint ---

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generation_config,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generate(ctx context.Context, operation string, req *generateRequest) (string, error) {
	start := time.Now()
	text, err := c.doGenerate(ctx, req)
	if c.collector != nil {
		c.collector.ObserveAIRequest(operation, time.Since(start), err == nil)
	}
	if err != nil {
		c.log.Warn("ai request failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	return text, err
}

func (c *GeminiClient) doGenerate(ctx context.Context, req *generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

const extractionPrompt = `Analyze the attached medical document. First, classify it into one of the following types: 'Lab Report', 'Prescription', 'Receipt', 'Clinical Note', 'Scan Report', 'Insurance Policy', 'Claim Document', 'Unknown'.

Then, extract the key information based on its type and return it as a single JSON object with these fields:
- "documentType": the classification you determined.
- "reportType": the specific title of the report (e.g. "Complete Blood Count", "Coronary Angiogram", "Pharmacy Bill").
- "hospital": the name of the hospital, clinic, or pharmacy.
- "timestamp": the primary date of the report or bill, in ISO 8601 format (YYYY-MM-DD).
- "extractedValues": for Lab Reports, an object mapping test names to {"value", "unit", "ref", "is_abnormal"}.
- "billingInfo": for Receipts/Bills, an object with "total_amount" and an "items" list of {"name", "amount"}.
- "diagnosis": a list of diagnoses or impressions.
- "medications": a list of prescribed medications.
- "abnormalities": a list of key abnormal findings.
- "patientSummary": a simple one-paragraph summary for the patient.
- "doctorSummary": a concise clinical summary for a doctor.

If a field is not present, return an empty string, empty array, or null.`

// Extract classifies and structures a single uploaded document. Any model
// or transport failure is reported as ErrExtractionFailed.
func (c *GeminiClient) Extract(ctx context.Context, file File) (*Extraction, error) {
	req := &generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []contentPart{
				{InlineData: &inlineData{
					MIMEType: file.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(file.Data),
				}},
				{Text: extractionPrompt},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}

	text, err := c.generate(ctx, "extract", req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	var extraction Extraction
	if err := json.Unmarshal([]byte(text), &extraction); err != nil {
		return nil, fmt.Errorf("%w: decoding extraction: %w", ErrExtractionFailed, err)
	}
	if !extraction.DocumentType.IsValid() {
		extraction.DocumentType = document.TypeUnknown
	}

	return &extraction, nil
}

const insightsPromptFmt = `You are a proactive AI health analyst. Analyze the following timeline of a patient's health documents.

1. Extract Key Vitals: from the MOST RECENT document that contains them, extract up to 4 key vital signs like 'Blood Pressure', 'Total Cholesterol', 'LDL', 'HDL', 'Hemoglobin', or 'Blood Sugar'. Format this as a 'vitals' object mapping names to {"value", "unit"}.
2. Generate Insights: identify up to 2 critical insights, trends, or potential issues. For each insight provide "category" ('Trend', 'Interaction', 'Reminder', 'Observation'), "severity" ('Low', 'Medium', 'High'), "title", "description", and "recommendation".

Patient's health data:
%s

Return a SINGLE JSON object with a 'vitals' object and an 'insights' array.`

func (c *GeminiClient) GenerateInsights(ctx context.Context, docs []DocumentContext) (*InsightReport, error) {
	docJSON, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encoding document context: %w", err)
	}

	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: fmt.Sprintf(insightsPromptFmt, docJSON)}},
		}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}

	text, err := c.generate(ctx, "insights", req)
	if err != nil {
		return nil, err
	}

	var report InsightReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("decoding insight report: %w", err)
	}
	return &report, nil
}

const chatPromptFmt = `You are HealthVault AI, a friendly and helpful assistant for explaining medical records.

Here is the user's available medical data in JSON format:
%s

The user's question is: %q

Based ONLY on the provided medical data, answer the user's question in a simple, clear, and conversational tone.
- If the question is about a specific value (like "hemoglobin"), find the latest report with that value and state the value, its unit, and the date of the report.
- If the question is a general greeting, respond politely.
- If you cannot answer the question with the given data, say "I'm sorry, but I can't find that information in your uploaded documents."
- Do not provide medical advice. Always suggest consulting a doctor for medical advice.`

func (c *GeminiClient) Chat(ctx context.Context, message string, docs []DocumentContext) (string, error) {
	docJSON, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("encoding document context: %w", err)
	}

	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: fmt.Sprintf(chatPromptFmt, docJSON, message)}},
		}},
	}
	return c.generate(ctx, "chat", req)
}

func (c *GeminiClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf("Translate the following English text to %s. Respond only with the translated text, nothing else.\n\n%s", targetLanguage, text)
	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: prompt}},
		}},
	}
	return c.generate(ctx, "translate", req)
}

const visitSummaryPromptFmt = `You are an expert medical assistant AI. Based on the patient's entire health history provided below, generate a "Doctor's Visit Brief".
The brief should be in Markdown format and include these sections:

### Key Health Summary
A one-paragraph overview of the patient's main conditions and history.

### Recent Events (Last 6 Months)
A bulleted list of major events, diagnoses, or new medications from the last 6 months.

### Key Discussion Points
A bulleted list of 3-4 important topics or questions the patient should discuss with their doctor, based on trends, new symptoms, or upcoming follow-ups mentioned in the data.

Patient's health data:
%s`

func (c *GeminiClient) VisitSummary(ctx context.Context, docs []DocumentContext) (string, error) {
	docJSON, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("encoding document context: %w", err)
	}

	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: fmt.Sprintf(visitSummaryPromptFmt, docJSON)}},
		}},
	}
	return c.generate(ctx, "visit_summary", req)
}

const analyzeBillPromptFmt = `You are an insurance claims co-pilot. Given a medical bill and the patient's insurance policy, produce a short pre-claim analysis in Markdown: estimated insurance coverage, the patient's estimated cost against deductible and co-pay, and any missing documentation (such as pre-authorization) the patient should verify before submitting.

Bill:
%s

Policy:
%s`

func (c *GeminiClient) AnalyzeBill(ctx context.Context, bill *document.HealthDocument, policy *insurance.Policy) (string, error) {
	billJSON, err := json.Marshal(bill)
	if err != nil {
		return "", fmt.Errorf("encoding bill: %w", err)
	}
	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("encoding policy: %w", err)
	}

	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: fmt.Sprintf(analyzeBillPromptFmt, billJSON, policyJSON)}},
		}},
	}
	return c.generate(ctx, "analyze_bill", req)
}

const draftAppealPromptFmt = `You are an insurance claims co-pilot. The claim for the bill below was denied. Draft a formal appeal letter in Markdown addressed to the insurer's claims department, written on behalf of the policy holder %q. Reference the policy number, the claim date, and the clinical context in the bill, and argue medical necessity from the diagnoses and medications present.

Bill:
%s

Policy:
%s`

func (c *GeminiClient) DraftAppeal(ctx context.Context, holderName string, bill *document.HealthDocument, policy *insurance.Policy) (string, error) {
	billJSON, err := json.Marshal(bill)
	if err != nil {
		return "", fmt.Errorf("encoding bill: %w", err)
	}
	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("encoding policy: %w", err)
	}

	req := &generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: fmt.Sprintf(draftAppealPromptFmt, holderName, billJSON, policyJSON)}},
		}},
	}
	return c.generate(ctx, "draft_appeal", req)
}
