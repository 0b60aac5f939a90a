package domain

import (
	"slices"
	"strings"
	"time"
)

// ViabilityLevel is the coarse validation outcome of a startup
type ViabilityLevel string

const (
	ViabilityHigh     ViabilityLevel = "High"
	ViabilityModerate ViabilityLevel = "Moderate"
	ViabilityLow      ViabilityLevel = "Low"
)

// Valid reports whether v is one of the three known tiers
func (v ViabilityLevel) Valid() bool {
	switch v {
	case ViabilityHigh, ViabilityModerate, ViabilityLow:
		return true
	}
	return false
}

// Founder identifies the owner of a startup idea
type Founder struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
}

// RecipientID is the identity notifications for this founder are addressed to.
// Falls back to the email when no id is set.
func (f Founder) RecipientID() string {
	if id := strings.TrimSpace(f.ID); id != "" {
		return id
	}
	return strings.TrimSpace(f.Email)
}

// StartupIdea is a startup published to the public catalog
type StartupIdea struct {
	ID               string         `json:"id" yaml:"id"`
	IdeaName         string         `json:"ideaName" yaml:"ideaName"`
	Description      string         `json:"description" yaml:"description"`
	Industry         string         `json:"industry" yaml:"industry"`
	Stage            string         `json:"stage" yaml:"stage"`
	ProblemStatement string         `json:"problemStatement,omitempty" yaml:"problemStatement"`
	TargetMarket     string         `json:"targetMarket,omitempty" yaml:"targetMarket"`
	BusinessModel    string         `json:"businessModel,omitempty" yaml:"businessModel"`
	FundingNeeded    string         `json:"fundingNeeded,omitempty" yaml:"fundingNeeded"`
	ValidationScore  Score          `json:"validationScore" yaml:"-"`
	ViabilityLevel   ViabilityLevel `json:"viabilityLevel" yaml:"viabilityLevel"`
	Founder          Founder        `json:"founder" yaml:"founder"`
	CreatedAt        time.Time      `json:"createdAt" yaml:"createdAt"`
}

// WatchlistItem is a startup snapshot an investor chose to track
type WatchlistItem struct {
	StartupIdea
	AddedAt time.Time `json:"addedAt"`
}

// Role distinguishes founder and investor identities
type Role string

const (
	RoleFounder  Role = "founder"
	RoleInvestor Role = "investor"
)

// User is the current-user identity owned by the authentication layer
type User struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Role      Role   `json:"role" yaml:"role"`
}

// RecipientIDs are the identities notifications for this user may be
// addressed to: the id, then the email. Founders without an id are notified
// by email.
func (u User) RecipientIDs() []string {
	ids := make([]string, 0, 2)
	for _, id := range []string{u.ID, u.Email} {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// DisplayName returns "First Last", or the email when no name is known
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Email
	}
	return name
}
