package notification

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/store"
)

// NewNotification is the input to Notify. The type comes from Data.
type NewNotification struct {
	RecipientID string
	StartupID   string
	Title       string
	Message     string
	Data        domain.NotificationData
}

// ListOptions filters ListFor
type ListOptions struct {
	UnreadOnly bool
}

// Dispatcher appends notifications to the shared notifications collection
type Dispatcher struct {
	store store.RecordStore
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func NewDispatcher(s store.RecordStore, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		store: s,
		log:   logger.OrNop(log).With("service", "NotificationDispatcher"),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Notify appends an unread notification. Repeated calls produce repeated
// notifications; nothing is deduplicated.
func (d *Dispatcher) Notify(ctx context.Context, in NewNotification) (domain.Notification, error) {
	if strings.TrimSpace(in.RecipientID) == "" {
		return domain.Notification{}, fmt.Errorf("%w: notification without recipient", domain.ErrInvalidArgument)
	}
	if in.Data == nil {
		return domain.Notification{}, fmt.Errorf("%w: notification without data", domain.ErrInvalidArgument)
	}

	all, err := d.load(ctx)
	if err != nil {
		return domain.Notification{}, err
	}

	n := domain.Notification{
		ID:          d.newID(),
		RecipientID: in.RecipientID,
		StartupID:   in.StartupID,
		Title:       in.Title,
		Message:     in.Message,
		Data:        in.Data,
		CreatedAt:   d.now().UTC(),
	}
	if err := store.Save(ctx, d.store, store.UserNotifications, append(all, n)); err != nil {
		return domain.Notification{}, fmt.Errorf("save notification: %w", err)
	}

	d.log.Info("notification sent", "id", n.ID, "recipient", n.RecipientID, "type", n.Type())
	return n, nil
}

// MarkRead flips an unread notification to read. It reports whether
// anything changed and does not write otherwise.
func (d *Dispatcher) MarkRead(ctx context.Context, id string) (bool, error) {
	all, err := d.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].Read {
			return false, nil
		}
		all[i].Read = true
		if err := store.Save(ctx, d.store, store.UserNotifications, all); err != nil {
			return false, fmt.Errorf("save notification: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// MarkAllRead marks every unread notification addressed to any of
// recipientIDs, returning the count
func (d *Dispatcher) MarkAllRead(ctx context.Context, recipientIDs ...string) (int, error) {
	all, err := d.load(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range all {
		if slices.Contains(recipientIDs, all[i].RecipientID) && !all[i].Read {
			all[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := store.Save(ctx, d.store, store.UserNotifications, all); err != nil {
		return 0, fmt.Errorf("save notifications: %w", err)
	}
	return changed, nil
}

// ListFor returns the notifications addressed to any of recipientIDs,
// newest first. Equal timestamps keep the later-appended one first.
func (d *Dispatcher) ListFor(ctx context.Context, opts ListOptions, recipientIDs ...string) ([]domain.Notification, error) {
	all, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		n := all[i]
		if !slices.Contains(recipientIDs, n.RecipientID) {
			continue
		}
		if opts.UnreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UnreadCount counts the unread notifications addressed to any of recipientIDs
func (d *Dispatcher) UnreadCount(ctx context.Context, recipientIDs ...string) (int, error) {
	unread, err := d.ListFor(ctx, ListOptions{UnreadOnly: true}, recipientIDs...)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

func (d *Dispatcher) load(ctx context.Context) ([]domain.Notification, error) {
	all, err := store.Load[domain.Notification](ctx, d.store, store.UserNotifications)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	return all, nil
}
