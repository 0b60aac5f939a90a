package pitch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/logger"
)

// GenerateResult is what a generator hands back. Success=false carries a
// reason in Error and no usable content.
type GenerateResult struct {
	Success      bool                 `json:"success"`
	PitchContent *domain.PitchContent `json:"pitch_content,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// Generator is the external pitch-writing collaborator
type Generator interface {
	Generate(ctx context.Context, n domain.StartupNarrative) (*GenerateResult, error)
}

// Service wraps a Generator. It holds no state and writes nothing.
type Service struct {
	gen Generator
	log *logger.Logger
}

func NewService(gen Generator, log *logger.Logger) *Service {
	return &Service{gen: gen, log: logger.OrNop(log).With("service", "PitchGenerator")}
}

// ErrNotConfigured is returned when no generator is available
var ErrNotConfigured = errors.New("pitch generator not configured")

// Generate returns pitch content for startup. A returned error and an
// unsuccessful result are both reported as ErrGenerationFailed; partial
// content from a failed result is discarded.
func (s *Service) Generate(ctx context.Context, startup domain.StartupIdea) (domain.PitchContent, error) {
	if s == nil || s.gen == nil {
		return domain.PitchContent{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, ErrNotConfigured)
	}

	res, err := s.gen.Generate(ctx, domain.NarrativeOf(startup))
	if err != nil {
		s.log.Warn("pitch generation failed", "startup_id", startup.ID, "error", err)
		return domain.PitchContent{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if res == nil || !res.Success || res.PitchContent == nil {
		reason := "generator reported failure"
		if res != nil && res.Error != "" {
			reason = res.Error
		}
		s.log.Warn("pitch generation unsuccessful", "startup_id", startup.ID, "reason", reason)
		return domain.PitchContent{}, fmt.Errorf("%w: %s", domain.ErrGenerationFailed, reason)
	}
	return *res.PitchContent, nil
}

var sections = []struct {
	label string
	get   func(domain.PitchContent) string
}{
	{"Executive Summary", func(p domain.PitchContent) string { return p.ExecutiveSummary }},
	{"Problem Statement", func(p domain.PitchContent) string { return p.ProblemStatement }},
	{"Solution Overview", func(p domain.PitchContent) string { return p.SolutionOverview }},
	{"Market Opportunity", func(p domain.PitchContent) string { return p.MarketOpportunity }},
	{"Business Model", func(p domain.PitchContent) string { return p.BusinessModel }},
	{"Competitive Advantage", func(p domain.PitchContent) string { return p.CompetitiveAdvantage }},
	{"Funding Requirements", func(p domain.PitchContent) string { return p.FundingRequirements }},
}

// ExportText renders the pitch as labeled sections in fixed order, for the
// clipboard
func ExportText(p domain.PitchContent) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		blocks = append(blocks, s.label+":\n"+strings.TrimSpace(s.get(p)))
	}
	return strings.Join(blocks, "\n\n")
}
