package watchlist

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/store"
)

// Notifier delivers the founder-facing "added to watchlist" notice
type Notifier interface {
	Notify(ctx context.Context, in notification.NewNotification) (domain.Notification, error)
}

// Identity resolves the investor doing the tracking
type Identity interface {
	RequireInvestor(ctx context.Context) (domain.User, error)
}

// Manager owns the investor watchlist collection. The store it is given is
// the profile scope: one watchlist per store.
type Manager struct {
	store    store.RecordStore
	log      *logger.Logger
	now      func() time.Time
	notifier Notifier
	identity Identity
}

func NewManager(s store.RecordStore, log *logger.Logger) *Manager {
	return &Manager{
		store: s,
		log:   logger.OrNop(log).With("service", "Watchlist"),
		now:   time.Now,
	}
}

// WithNotifications makes first-time adds notify the startup's founder.
// Adds then also require the current user to be an investor. Delivery
// failures are logged and never fail the add.
func (m *Manager) WithNotifications(n Notifier, id Identity) *Manager {
	m.notifier = n
	m.identity = id
	return m
}

// List returns items oldest first
func (m *Manager) List(ctx context.Context) ([]domain.WatchlistItem, error) {
	items, err := store.Load[domain.WatchlistItem](ctx, m.store, store.InvestorWatchlist)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return items, nil
}

// Contains reports whether startupID is tracked
func (m *Manager) Contains(ctx context.Context, startupID string) (bool, error) {
	items, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(items, startupID) >= 0, nil
}

// Add appends a snapshot of startup. If it is already tracked the existing
// item is returned unchanged and nothing is written.
func (m *Manager) Add(ctx context.Context, startup domain.StartupIdea) (domain.WatchlistItem, error) {
	if strings.TrimSpace(startup.ID) == "" {
		return domain.WatchlistItem{}, fmt.Errorf("%w: startup without id", domain.ErrInvalidArgument)
	}

	items, err := m.List(ctx)
	if err != nil {
		return domain.WatchlistItem{}, err
	}
	if i := indexOf(items, startup.ID); i >= 0 {
		return items[i], nil
	}

	var investor *domain.User
	if m.identity != nil {
		u, err := m.identity.RequireInvestor(ctx)
		if err != nil {
			return domain.WatchlistItem{}, err
		}
		investor = &u
	}

	item := domain.WatchlistItem{StartupIdea: startup, AddedAt: m.now().UTC()}
	if err := store.Save(ctx, m.store, store.InvestorWatchlist, append(items, item)); err != nil {
		return domain.WatchlistItem{}, fmt.Errorf("save watchlist: %w", err)
	}

	m.log.Info("startup added to watchlist", "startup_id", startup.ID)
	if investor != nil {
		m.notifyFounder(ctx, startup, *investor)
	}
	return item, nil
}

// Remove drops startupID and reports whether it was present. Absent ids are
// a no-op without a write.
func (m *Manager) Remove(ctx context.Context, startupID string) (bool, error) {
	items, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, startupID)
	if i < 0 {
		return false, nil
	}

	items = append(items[:i], items[i+1:]...)
	if err := store.Save(ctx, m.store, store.InvestorWatchlist, items); err != nil {
		return false, fmt.Errorf("save watchlist: %w", err)
	}

	m.log.Info("startup removed from watchlist", "startup_id", startupID)
	return true, nil
}

func (m *Manager) notifyFounder(ctx context.Context, startup domain.StartupIdea, investor domain.User) {
	recipient := startup.Founder.RecipientID()
	if m.notifier == nil || recipient == "" {
		return
	}

	_, err := m.notifier.Notify(ctx, notification.NewNotification{
		RecipientID: recipient,
		StartupID:   startup.ID,
		Title:       fmt.Sprintf("%s is on an investor watchlist", startup.IdeaName),
		Message:     fmt.Sprintf("%s started tracking %s.", investor.DisplayName(), startup.IdeaName),
		Data: domain.WatchlistAdded{
			InvestorID:   investor.ID,
			InvestorName: investor.DisplayName(),
			StartupName:  startup.IdeaName,
		},
	})
	if err != nil {
		m.log.Warn("watchlist notification failed", "startup_id", startup.ID, "error", err)
	}
}

func indexOf(items []domain.WatchlistItem, startupID string) int {
	for i, item := range items {
		if item.ID == startupID {
			return i
		}
	}
	return -1
}

// Summary aggregates a watchlist
type Summary struct {
	Count              int      `json:"count"`
	AverageScore       int      `json:"averageScore"`
	DistinctIndustries int      `json:"distinctIndustries"`
	Industries         []string `json:"industries"`
}

// Summarize averages normalized scores, rounded to the nearest integer.
// An empty list averages to 0. Industries are compared case-insensitively
// and blank industries are not counted.
func Summarize(items []domain.WatchlistItem) Summary {
	s := Summary{Count: len(items), Industries: []string{}}
	if len(items) == 0 {
		return s
	}

	var sum float64
	seen := make(map[string]bool)
	for _, item := range items {
		sum += item.ValidationScore.Normalized()

		industry := strings.TrimSpace(item.Industry)
		key := strings.ToLower(industry)
		if industry == "" || seen[key] {
			continue
		}
		seen[key] = true
		s.Industries = append(s.Industries, industry)
	}
	sort.Strings(s.Industries)

	s.AverageScore = int(math.Round(sum / float64(len(items))))
	s.DistinctIndustries = len(s.Industries)
	return s
}
