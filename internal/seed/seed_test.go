package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/identity"
	"github.com/pbaille/ventures/internal/store"
)

const sample = `
currentUser:
  id: inv-1
  firstName: Ivy
  lastName: Stone
  email: ivy@example.com
  role: investor
startups:
  - id: s1
    ideaName: SolarGrid
    industry: Energy
    stage: MVP
    validationScore: 82
    viabilityLevel: High
    createdAt: 2026-01-15T10:00:00Z
    founder:
      id: founder-1
      firstName: Fay
      lastName: Green
      email: fay@example.com
  - id: s2
    ideaName: MediTrack
    industry: Healthcare
    viabilityLevel: Low
    founder:
      email: mo@example.com
`

func TestParseAndImport(t *testing.T) {
	ctx := context.Background()
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	s := store.NewMemory()
	res, err := Import(ctx, s, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Startups: 2, CurrentUser: true}, res)

	idea, err := catalog.New(s).FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 82.0, idea.ValidationScore.Normalized())
	assert.Equal(t, domain.ViabilityHigh, idea.ViabilityLevel)
	assert.Equal(t, "founder-1", idea.Founder.RecipientID())
	assert.Equal(t, 2026, idea.CreatedAt.Year())

	other, err := catalog.New(s).FindByID(ctx, "s2")
	require.NoError(t, err)
	_, present := other.ValidationScore.Raw()
	assert.False(t, present)

	user, err := identity.NewResolver(s).RequireInvestor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ivy Stone", user.DisplayName())
}

func TestParseRejectsUnknownFieldsAndMissingIDs(t *testing.T) {
	_, err := Parse(strings.NewReader("startups:\n  - ideaName: x\n"))
	assert.ErrorContains(t, err, "missing id")

	_, err = Parse(strings.NewReader("investors: []\n"))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	res, err := ImportFile(context.Background(), store.NewMemory(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Startups)

	_, err = ImportFile(context.Background(), store.NewMemory(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestImportBundledSeed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	res, err := ImportFile(ctx, s, filepath.Join("..", "..", "testdata", "seed.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Startups)
	assert.True(t, res.CurrentUser)

	meditrack, err := catalog.New(s).FindByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "omar@example.com", meditrack.Founder.RecipientID())
	assert.Zero(t, meditrack.ValidationScore.Normalized())

	green, err := catalog.New(s).FindByID(ctx, "s3")
	require.NoError(t, err)
	assert.Equal(t, 64.5, green.ValidationScore.Normalized())
}
