package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// InvestmentType is the instrument an investor proposes
type InvestmentType string

const (
	InvestmentEquity          InvestmentType = "equity"
	InvestmentConvertibleNote InvestmentType = "convertible_note"
	InvestmentSAFE            InvestmentType = "safe"
	InvestmentLoan            InvestmentType = "loan"
	InvestmentRevenueShare    InvestmentType = "revenue_share"
)

var investmentTypeLabels = map[InvestmentType]string{
	InvestmentEquity:          "equity",
	InvestmentConvertibleNote: "convertible note",
	InvestmentSAFE:            "SAFE",
	InvestmentLoan:            "loan",
	InvestmentRevenueShare:    "revenue share",
}

// Valid reports whether t is a known investment type
func (t InvestmentType) Valid() bool {
	_, ok := investmentTypeLabels[t]
	return ok
}

// Label is the human-readable name used in notification text
func (t InvestmentType) Label() string {
	if l, ok := investmentTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// InvestmentProposal is the in-progress offer captured before acknowledgment.
// It is only ever persisted as a snapshot inside an Acknowledgment.
type InvestmentProposal struct {
	InvestmentAmount float64        `json:"investmentAmount"`
	InvestmentType   InvestmentType `json:"investmentType"`
	TimeFrame        string         `json:"timeFrame"`
}

// Validate checks amount and type
func (p InvestmentProposal) Validate() error {
	if math.IsNaN(p.InvestmentAmount) || math.IsInf(p.InvestmentAmount, 0) || p.InvestmentAmount <= 0 {
		return fmt.Errorf("%w: investment amount must be greater than zero", ErrInvalidArgument)
	}
	if !p.InvestmentType.Valid() {
		return fmt.Errorf("%w: unknown investment type %q", ErrInvalidArgument, p.InvestmentType)
	}
	return nil
}

// Timeline is the investor's expected timeline for closing
type Timeline string

const (
	TimelineWithinOneWeek    Timeline = "Within 1 week"
	TimelineOneToTwoWeeks    Timeline = "1-2 weeks"
	TimelineTwoToFourWeeks   Timeline = "2-4 weeks"
	TimelineOneToTwoMonths   Timeline = "1-2 months"
	TimelineTwoToThreeMonths Timeline = "2-3 months"
	TimelineOverThreeMonths  Timeline = "3+ months"
)

// Timelines lists the selectable timelines in display order
var Timelines = []Timeline{
	TimelineWithinOneWeek,
	TimelineOneToTwoWeeks,
	TimelineTwoToFourWeeks,
	TimelineOneToTwoMonths,
	TimelineTwoToThreeMonths,
	TimelineOverThreeMonths,
}

// Valid reports whether t is one of Timelines
func (t Timeline) Valid() bool {
	for _, v := range Timelines {
		if v == t {
			return true
		}
	}
	return false
}

// ContactPreference is how the investor wants to be reached
type ContactPreference string

const (
	ContactEmail ContactPreference = "email"
	ContactPhone ContactPreference = "phone"
	ContactVideo ContactPreference = "video"
)

// Valid reports whether c is email, phone or video
func (c ContactPreference) Valid() bool {
	switch c {
	case ContactEmail, ContactPhone, ContactVideo:
		return true
	}
	return false
}

// DueDiligenceChecklist is the checklist offered to investors
var DueDiligenceChecklist = []string{
	"Financial statements",
	"Business plan review",
	"Market analysis",
	"Legal documentation",
	"Team background check",
	"Technical due diligence",
	"Customer references",
	"Intellectual property review",
}

// DueDiligenceSet is an unordered set of selected checklist items
type DueDiligenceSet map[string]struct{}

// NewDueDiligenceSet builds a set from items, ignoring blanks and duplicates
func NewDueDiligenceSet(items ...string) DueDiligenceSet {
	s := make(DueDiligenceSet, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			s[item] = struct{}{}
		}
	}
	return s
}

// Has reports membership
func (s DueDiligenceSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Toggle returns a copy of s with item added if absent or removed if present.
// s itself is not modified.
func (s DueDiligenceSet) Toggle(item string) DueDiligenceSet {
	out := make(DueDiligenceSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if _, ok := out[item]; ok {
		delete(out, item)
	} else {
		out[item] = struct{}{}
	}
	return out
}

// Items returns the members sorted, for stable output
func (s DueDiligenceSet) Items() []string {
	items := make([]string, 0, len(s))
	for k := range s {
		items = append(items, k)
	}
	sort.Strings(items)
	return items
}

// MarshalJSON encodes the set as a sorted array
func (s DueDiligenceSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes an array of strings
func (s *DueDiligenceSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewDueDiligenceSet(items...)
	return nil
}

// AcknowledgmentData is the due-diligence metadata an investor attaches
type AcknowledgmentData struct {
	InvestorNotes     string            `json:"investorNotes"`
	ExpectedTimeline  Timeline          `json:"expectedTimeline"`
	DueDiligenceItems DueDiligenceSet   `json:"dueDiligenceItems"`
	NextSteps         string            `json:"nextSteps"`
	ContactPreference ContactPreference `json:"contactPreference"`
}

// Normalize fills defaults: email contact and an empty checklist
func (d AcknowledgmentData) Normalize() AcknowledgmentData {
	if d.ContactPreference == "" {
		d.ContactPreference = ContactEmail
	}
	if d.DueDiligenceItems == nil {
		d.DueDiligenceItems = DueDiligenceSet{}
	}
	d.InvestorNotes = strings.TrimSpace(d.InvestorNotes)
	d.NextSteps = strings.TrimSpace(d.NextSteps)
	return d
}

// Validate checks the enumerated fields
func (d AcknowledgmentData) Validate() error {
	if !d.ExpectedTimeline.Valid() {
		return fmt.Errorf("%w: unknown timeline %q", ErrInvalidArgument, d.ExpectedTimeline)
	}
	if !d.ContactPreference.Valid() {
		return fmt.Errorf("%w: unknown contact preference %q", ErrInvalidArgument, d.ContactPreference)
	}
	return nil
}

// AcknowledgmentStatus is the lifecycle state of an acknowledgment
type AcknowledgmentStatus string

const StatusAcknowledged AcknowledgmentStatus = "acknowledged"

// Acknowledgment records an investor's confirmed intent on a proposal.
// Append-only: a resubmission creates a new record.
type Acknowledgment struct {
	ID                 string               `json:"id"`
	StartupID          string               `json:"startupId"`
	StartupName        string               `json:"startupName"`
	InvestorID         string               `json:"investorId"`
	InvestorName       string               `json:"investorName"`
	OriginalInvestment InvestmentProposal   `json:"originalInvestment"`
	AcknowledgmentData AcknowledgmentData   `json:"acknowledgmentData"`
	Status             AcknowledgmentStatus `json:"status"`
	SubmittedAt        time.Time            `json:"submittedAt"`
}
