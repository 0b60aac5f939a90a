package pitch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pbaille/ventures/internal/domain"
)

const anthropicAPI = "https://api.anthropic.com/v1/messages"

// Anthropic generates pitch content via the Anthropic messages API
type Anthropic struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnthropic creates a generator; an empty key is a configuration error
func NewAnthropic(apiKey, model string, timeout time.Duration) (*Anthropic, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Anthropic{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicAPI,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Generate asks the model for the seven pitch sections
func (a *Anthropic) Generate(ctx context.Context, n domain.StartupNarrative) (*GenerateResult, error) {
	resp, err := a.callAPI(ctx, buildPrompt(n))
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}

	content, err := parseResponse(resp)
	if err != nil {
		return &GenerateResult{Success: false, Error: err.Error()}, nil
	}
	return &GenerateResult{Success: true, PitchContent: content}, nil
}

func buildPrompt(n domain.StartupNarrative) string {
	var sb strings.Builder

	sb.WriteString("Write an investor pitch for this startup. Return JSON only.\n\n")
	writeField(&sb, "Name", n.IdeaName)
	writeField(&sb, "Description", n.Description)
	writeField(&sb, "Industry", n.Industry)
	writeField(&sb, "Stage", n.Stage)
	writeField(&sb, "Problem", n.ProblemStatement)
	writeField(&sb, "Target market", n.TargetMarket)
	writeField(&sb, "Business model", n.BusinessModel)
	writeField(&sb, "Funding needed", n.FundingNeeded)

	sb.WriteString(`
Return a JSON object with this structure:
{
  "executiveSummary": "...",
  "problemStatement": "...",
  "solutionOverview": "...",
  "marketOpportunity": "...",
  "businessModel": "...",
  "competitiveAdvantage": "...",
  "fundingRequirements": "..."
}

Rules:
- Every field is plain prose, 2-4 sentences
- Do not invent traction numbers that are not in the input
- Return ONLY the JSON, no other text.`)

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *Anthropic) callAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     a.model,
		MaxTokens: 2048,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Content[0].Text, nil
}

func parseResponse(resp string) (*domain.PitchContent, error) {
	// Clean up response - remove markdown code blocks if present
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var content domain.PitchContent
	if err := json.Unmarshal([]byte(resp), &content); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if strings.TrimSpace(content.ExecutiveSummary) == "" {
		return nil, fmt.Errorf("response has no executive summary")
	}

	return &content, nil
}
