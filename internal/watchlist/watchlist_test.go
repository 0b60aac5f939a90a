package watchlist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/store"
	"github.com/pbaille/ventures/internal/store/storetest"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, in notification.NewNotification) (domain.Notification, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Notification), args.Error(1)
}

type staticIdentity struct {
	user domain.User
	err  error
}

func (s staticIdentity) RequireInvestor(context.Context) (domain.User, error) { return s.user, s.err }

func startup(id, industry string, score domain.Score) domain.StartupIdea {
	return domain.StartupIdea{
		ID:              id,
		IdeaName:        "Idea " + id,
		Industry:        industry,
		ValidationScore: score,
		Founder:         domain.Founder{ID: "founder-" + id, Email: id + "@example.com"},
	}
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	rec := storetest.NewRecorder(store.NewMemory())
	m := NewManager(rec, nil)
	m.now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }

	first, err := m.Add(ctx, startup("s1", "Energy", domain.NewScore(70)))
	require.NoError(t, err)

	m.now = func() time.Time { return time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC) }
	again, err := m.Add(ctx, startup("s1", "Energy", domain.NewScore(99)))
	require.NoError(t, err)

	assert.Equal(t, first, again, "existing item returned unchanged")
	assert.Equal(t, 1, rec.Writes(store.InvestorWatchlist))

	items, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(), nil)

	for _, id := range []string{"s3", "s1", "s2"} {
		_, err := m.Add(ctx, startup(id, "Energy", domain.Score{}))
		require.NoError(t, err)
	}

	items, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"s3", "s1", "s2"}, []string{items[0].ID, items[1].ID, items[2].ID})

	ok, err := m.Contains(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	rec := storetest.NewRecorder(store.NewMemory())
	m := NewManager(rec, nil)

	_, err := m.Add(ctx, startup("s1", "Energy", domain.Score{}))
	require.NoError(t, err)
	_, err = m.Add(ctx, startup("s2", "Health", domain.Score{}))
	require.NoError(t, err)

	removed, err := m.Remove(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 2, rec.Writes(store.InvestorWatchlist), "absent remove must not write")

	removed, err = m.Remove(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "s2", items[0].ID)
}

func TestAddRejectsMissingID(t *testing.T) {
	_, err := NewManager(store.NewMemory(), nil).Add(context.Background(), domain.StartupIdea{IdeaName: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAddReportsStoreFailure(t *testing.T) {
	ctx := context.Background()
	rec := storetest.NewRecorder(store.NewMemory())
	boom := errors.New("quota exceeded")
	rec.FailWrites(store.InvestorWatchlist, boom)

	_, err := NewManager(rec, nil).Add(ctx, startup("s1", "Energy", domain.Score{}))
	assert.ErrorIs(t, err, boom)
}

func TestSummarize(t *testing.T) {
	items := []domain.WatchlistItem{
		{StartupIdea: startup("s1", "Energy", domain.NewScore(math.NaN()))},
		{StartupIdea: startup("s2", "Healthcare", domain.NewScore(80))},
	}

	s := Summarize(items)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 40, s.AverageScore)
	assert.Equal(t, 2, s.DistinctIndustries)
	assert.Equal(t, []string{"Energy", "Healthcare"}, s.Industries)
}

func TestSummarizeRoundingAndDuplicates(t *testing.T) {
	items := []domain.WatchlistItem{
		{StartupIdea: startup("s1", "Energy", domain.NewScore(50))},
		{StartupIdea: startup("s2", "energy", domain.NewScore(51))},
		{StartupIdea: startup("s3", "", domain.NewScore(150))},
		{StartupIdea: startup("s4", "Fintech", domain.Score{})},
	}

	s := Summarize(items)
	// (50 + 51 + 0 + 0) / 4 = 25.25
	assert.Equal(t, 25, s.AverageScore)
	assert.Equal(t, 2, s.DistinctIndustries)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{Industries: []string{}}, s)
}

func TestAddNotifiesFounderOnce(t *testing.T) {
	ctx := context.Background()
	n := new(mockNotifier)
	investor := domain.User{ID: "inv-1", FirstName: "Ivy", LastName: "Stone", Role: domain.RoleInvestor}
	m := NewManager(store.NewMemory(), nil).WithNotifications(n, staticIdentity{user: investor})

	n.On("Notify", mock.Anything, mock.MatchedBy(func(in notification.NewNotification) bool {
		data, ok := in.Data.(domain.WatchlistAdded)
		return ok && in.RecipientID == "founder-s1" && data.InvestorID == "inv-1"
	})).Return(domain.Notification{}, nil).Once()

	_, err := m.Add(ctx, startup("s1", "Energy", domain.Score{}))
	require.NoError(t, err)
	_, err = m.Add(ctx, startup("s1", "Energy", domain.Score{}))
	require.NoError(t, err)

	n.AssertExpectations(t)
}

func TestAddSurvivesNotifierFailure(t *testing.T) {
	ctx := context.Background()
	n := new(mockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(domain.Notification{}, errors.New("down"))
	m := NewManager(store.NewMemory(), nil).WithNotifications(n, staticIdentity{user: domain.User{ID: "inv-1"}})

	item, err := m.Add(ctx, startup("s1", "Energy", domain.Score{}))
	require.NoError(t, err)
	assert.Equal(t, "s1", item.ID)
	n.AssertExpectations(t)
}

func TestAddRequiresInvestor(t *testing.T) {
	ctx := context.Background()
	n := new(mockNotifier)
	rec := storetest.NewRecorder(store.NewMemory())
	notInvestor := fmt.Errorf("%w: current user founder-1 is not an investor", domain.ErrMissingContext)
	m := NewManager(rec, nil).WithNotifications(n, staticIdentity{err: notInvestor})

	_, err := m.Add(ctx, startup("s1", "Energy", domain.Score{}))
	assert.ErrorIs(t, err, domain.ErrMissingContext)
	assert.Zero(t, rec.Writes(store.InvestorWatchlist))
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
