package catalog

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/store"
)

func seededCatalog(t *testing.T) *Catalog {
	t.Helper()

	c := New(store.NewMemory())
	require.NoError(t, c.Publish(context.Background(),
		domain.StartupIdea{ID: "s1", IdeaName: "SolarGrid", Industry: "Energy", ValidationScore: domain.NewScore(math.NaN()), ViabilityLevel: domain.ViabilityLow},
		domain.StartupIdea{ID: "s2", IdeaName: "MediTrack", Industry: "Healthcare", ValidationScore: domain.NewScore(80), ViabilityLevel: domain.ViabilityHigh},
		domain.StartupIdea{ID: "s3", IdeaName: "GridLearn", Industry: "EdTech", ValidationScore: domain.NewScore(65), ViabilityLevel: domain.ViabilityModerate},
	))
	return c
}

func ids(ideas []domain.StartupIdea) []string {
	out := make([]string, len(ideas))
	for i, idea := range ideas {
		out[i] = idea.ID
	}
	return out
}

func TestFindByID(t *testing.T) {
	c := seededCatalog(t)

	idea, err := c.FindByID(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, "MediTrack", idea.IdeaName)

	_, err = c.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := seededCatalog(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"s1", "s2", "s3"}},
		{"   ", []string{"s1", "s2", "s3"}},
		{"grid", []string{"s1", "s3"}},
		{"HEALTH", []string{"s2"}},
		{"tech", []string{"s3"}},
		{"energy", []string{"s1"}},
		{"fintech", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := c.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestPublishUpsertsInPlace(t *testing.T) {
	c := seededCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Publish(ctx,
		domain.StartupIdea{ID: "s2", IdeaName: "MediTrack Pro", Industry: "Healthcare"},
		domain.StartupIdea{ID: "s4", IdeaName: "AgriSense", Industry: "Agriculture"},
	))

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, ids(all))
	assert.Equal(t, "MediTrack Pro", all[1].IdeaName)

	assert.ErrorIs(t, c.Publish(ctx, domain.StartupIdea{IdeaName: "anon"}), domain.ErrInvalidArgument)
}

func TestStatsNormalizesScores(t *testing.T) {
	st, err := seededCatalog(t).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, st.Count)
	// (0 + 80 + 65) / 3 = 48.33
	assert.Equal(t, 48, st.AverageScore)
	assert.Equal(t, 1, st.ByViability[domain.ViabilityHigh])
}

func TestFilterByViability(t *testing.T) {
	all, err := seededCatalog(t).All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"s3"}, ids(FilterByViability(all, "moderate")))
	assert.Len(t, FilterByViability(all, ""), 3)
}
