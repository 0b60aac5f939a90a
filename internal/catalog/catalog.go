// Package catalog is the read side of the public startup collection.
package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/store"
)

type Catalog struct {
	store store.RecordStore
}

func New(s store.RecordStore) *Catalog {
	return &Catalog{store: s}
}

// All returns the current snapshot in stored order
func (c *Catalog) All(ctx context.Context) ([]domain.StartupIdea, error) {
	ideas, err := store.Load[domain.StartupIdea](ctx, c.store, store.PublicStartupIdeas)
	if err != nil {
		return nil, fmt.Errorf("load startups: %w", err)
	}
	return ideas, nil
}

// FindByID scans the snapshot for id
func (c *Catalog) FindByID(ctx context.Context, id string) (domain.StartupIdea, error) {
	ideas, err := c.All(ctx)
	if err != nil {
		return domain.StartupIdea{}, err
	}
	for _, idea := range ideas {
		if idea.ID == id {
			return idea, nil
		}
	}
	return domain.StartupIdea{}, fmt.Errorf("startup %q: %w", id, domain.ErrNotFound)
}

// Search matches query case-insensitively against idea name OR industry.
// A blank query matches everything.
func (c *Catalog) Search(ctx context.Context, query string) ([]domain.StartupIdea, error) {
	ideas, err := c.All(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ideas, nil
	}

	matches := make([]domain.StartupIdea, 0, len(ideas))
	for _, idea := range ideas {
		if strings.Contains(strings.ToLower(idea.IdeaName), q) ||
			strings.Contains(strings.ToLower(idea.Industry), q) {
			matches = append(matches, idea)
		}
	}
	return matches, nil
}

// FilterByViability keeps ideas at the given level; an empty level keeps all
func FilterByViability(ideas []domain.StartupIdea, level domain.ViabilityLevel) []domain.StartupIdea {
	if level == "" {
		return ideas
	}
	out := make([]domain.StartupIdea, 0, len(ideas))
	for _, idea := range ideas {
		if strings.EqualFold(string(idea.ViabilityLevel), string(level)) {
			out = append(out, idea)
		}
	}
	return out
}

// Publish upserts ideas by id, keeping the position of existing entries.
// The founder-facing flow owns this collection; only seed imports call it here.
func (c *Catalog) Publish(ctx context.Context, ideas ...domain.StartupIdea) error {
	current, err := c.All(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(current))
	for i, idea := range current {
		index[idea.ID] = i
	}
	for _, idea := range ideas {
		if strings.TrimSpace(idea.ID) == "" {
			return fmt.Errorf("%w: startup without id", domain.ErrInvalidArgument)
		}
		if i, ok := index[idea.ID]; ok {
			current[i] = idea
			continue
		}
		index[idea.ID] = len(current)
		current = append(current, idea)
	}

	if err := store.Save(ctx, c.store, store.PublicStartupIdeas, current); err != nil {
		return fmt.Errorf("publish startups: %w", err)
	}
	return nil
}

// Stats summarizes the catalog
type Stats struct {
	Count        int                           `json:"count"`
	AverageScore int                           `json:"averageScore"`
	ByViability  map[domain.ViabilityLevel]int `json:"byViability"`
}

func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	ideas, err := c.All(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Count: len(ideas), ByViability: make(map[domain.ViabilityLevel]int)}
	var sum float64
	for _, idea := range ideas {
		sum += idea.ValidationScore.Normalized()
		if idea.ViabilityLevel.Valid() {
			st.ByViability[idea.ViabilityLevel]++
		}
	}
	if st.Count > 0 {
		st.AverageScore = int(math.Round(sum / float64(st.Count)))
	}
	return st, nil
}
