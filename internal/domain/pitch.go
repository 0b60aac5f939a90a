package domain

// StartupNarrative is the founder-written input to pitch generation
type StartupNarrative struct {
	IdeaName         string `json:"ideaName"`
	Description      string `json:"description"`
	Industry         string `json:"industry"`
	Stage            string `json:"stage"`
	ProblemStatement string `json:"problemStatement,omitempty"`
	TargetMarket     string `json:"targetMarket,omitempty"`
	BusinessModel    string `json:"businessModel,omitempty"`
	FundingNeeded    string `json:"fundingNeeded,omitempty"`
}

// NarrativeOf extracts the narrative fields of a startup
func NarrativeOf(s StartupIdea) StartupNarrative {
	return StartupNarrative{
		IdeaName:         s.IdeaName,
		Description:      s.Description,
		Industry:         s.Industry,
		Stage:            s.Stage,
		ProblemStatement: s.ProblemStatement,
		TargetMarket:     s.TargetMarket,
		BusinessModel:    s.BusinessModel,
		FundingNeeded:    s.FundingNeeded,
	}
}

// PitchContent is the structured pitch document returned by the generator
type PitchContent struct {
	ExecutiveSummary     string `json:"executiveSummary"`
	ProblemStatement     string `json:"problemStatement"`
	SolutionOverview     string `json:"solutionOverview"`
	MarketOpportunity    string `json:"marketOpportunity"`
	BusinessModel        string `json:"businessModel"`
	CompetitiveAdvantage string `json:"competitiveAdvantage"`
	FundingRequirements  string `json:"fundingRequirements"`
}
