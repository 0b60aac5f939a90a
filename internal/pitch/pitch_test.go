package pitch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/ventures/internal/domain"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, n domain.StartupNarrative) (*GenerateResult, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GenerateResult), args.Error(1)
}

func fullPitch() domain.PitchContent {
	return domain.PitchContent{
		ExecutiveSummary:     "ES",
		ProblemStatement:     "PS",
		SolutionOverview:     "SO",
		MarketOpportunity:    "MO",
		BusinessModel:        "BM",
		CompetitiveAdvantage: "CA",
		FundingRequirements:  "FR",
	}
}

func TestExportTextOrder(t *testing.T) {
	want := "Executive Summary:\nES\n\n" +
		"Problem Statement:\nPS\n\n" +
		"Solution Overview:\nSO\n\n" +
		"Market Opportunity:\nMO\n\n" +
		"Business Model:\nBM\n\n" +
		"Competitive Advantage:\nCA\n\n" +
		"Funding Requirements:\nFR"
	assert.Equal(t, want, ExportText(fullPitch()))
}

func TestServiceGenerate(t *testing.T) {
	ctx := context.Background()
	startup := domain.StartupIdea{ID: "s1", IdeaName: "SolarGrid", Industry: "Energy"}
	content := fullPitch()

	tests := []struct {
		name    string
		result  *GenerateResult
		err     error
		wantErr bool
	}{
		{"success", &GenerateResult{Success: true, PitchContent: &content}, nil, false},
		{"unsuccessful", &GenerateResult{Success: false, Error: "rate limited"}, nil, true},
		{"unsuccessful with partial content", &GenerateResult{Success: false, PitchContent: &content}, nil, true},
		{"success without content", &GenerateResult{Success: true}, nil, true},
		{"thrown", nil, errors.New("network down"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mockGenerator)
			gen.On("Generate", mock.Anything, domain.NarrativeOf(startup)).Return(tt.result, tt.err)

			got, err := NewService(gen, nil).Generate(ctx, startup)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrGenerationFailed)
				assert.Equal(t, domain.PitchContent{}, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, content, got)
			}
			gen.AssertExpectations(t)
		})
	}
}

func TestServiceWithoutGenerator(t *testing.T) {
	_, err := NewService(nil, nil).Generate(context.Background(), domain.StartupIdea{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseResponseStripsFences(t *testing.T) {
	raw, err := json.Marshal(fullPitch())
	require.NoError(t, err)

	got, err := parseResponse("```json\n" + string(raw) + "\n```")
	require.NoError(t, err)
	assert.Equal(t, fullPitch(), *got)

	_, err = parseResponse("not json")
	assert.Error(t, err)

	_, err = parseResponse(`{"problemStatement":"only this"}`)
	assert.Error(t, err)
}

func TestBuildPromptSkipsBlankFields(t *testing.T) {
	p := buildPrompt(domain.StartupNarrative{IdeaName: "SolarGrid", Industry: "Energy"})
	assert.Contains(t, p, "Name: SolarGrid")
	assert.Contains(t, p, "Industry: Energy")
	assert.NotContains(t, p, "Target market:")
}

func TestAnthropicGenerate(t *testing.T) {
	raw, err := json.Marshal(fullPitch())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.True(t, strings.Contains(req.Messages[0].Content, "SolarGrid"))

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": string(raw)}},
		})
	}))
	defer srv.Close()

	a, err := NewAnthropic("test-key", "test-model", time.Second)
	require.NoError(t, err)
	a.endpoint = srv.URL

	res, err := a.Generate(context.Background(), domain.StartupNarrative{IdeaName: "SolarGrid"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, fullPitch(), *res.PitchContent)
}

func TestAnthropicUnparseableIsUnsuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "I cannot help with that"}},
		})
	}))
	defer srv.Close()

	a, err := NewAnthropic("k", "", time.Second)
	require.NoError(t, err)
	a.endpoint = srv.URL

	res, err := a.Generate(context.Background(), domain.StartupNarrative{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestAnthropicHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a, err := NewAnthropic("k", "", time.Second)
	require.NoError(t, err)
	a.endpoint = srv.URL

	_, err = a.Generate(context.Background(), domain.StartupNarrative{})
	assert.ErrorContains(t, err, "status 503")
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic(" ", "", 0)
	assert.Error(t, err)
}
