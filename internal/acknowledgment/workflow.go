// Package acknowledgment turns an investor's in-progress proposal into an
// acknowledgment record plus the founder notification that announces it.
package acknowledgment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/notification"
	"github.com/pbaille/ventures/internal/store"
)

// Startups resolves the startup being invested in
type Startups interface {
	FindByID(ctx context.Context, id string) (domain.StartupIdea, error)
}

// Identity resolves the investor submitting. A current user who is not an
// investor is reported as ErrMissingContext.
type Identity interface {
	RequireInvestor(ctx context.Context) (domain.User, error)
}

// Notifier delivers the founder notification
type Notifier interface {
	Notify(ctx context.Context, in notification.NewNotification) (domain.Notification, error)
}

// Submission is one investor submission. Proposal is the transient offer
// carried over from the "start investment" step; nil means it was lost.
type Submission struct {
	StartupID string
	Proposal  *domain.InvestmentProposal
	Data      domain.AcknowledgmentData
}

// Result holds the pair of records a successful submission creates
type Result struct {
	Acknowledgment domain.Acknowledgment `json:"acknowledgment"`
	Notification   domain.Notification   `json:"notification"`
}

type Workflow struct {
	store    store.RecordStore
	startups Startups
	identity Identity
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewWorkflow(s store.RecordStore, startups Startups, identity Identity, notifier Notifier, log *logger.Logger) *Workflow {
	return &Workflow{
		store:    s,
		startups: startups,
		identity: identity,
		notifier: notifier,
		log:      logger.OrNop(log).With("service", "AcknowledgmentWorkflow"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Submit validates the context, appends the acknowledgment, then notifies
// the founder. Missing context fails with ErrMissingContext and bad input
// with ErrInvalidArgument, both before any write. A store failure fails with
// ErrSubmissionFailed; if the notification cannot be written the
// acknowledgments collection is restored to its previous contents. Nothing
// is retried, and calling again creates a new pair.
func (w *Workflow) Submit(ctx context.Context, sub Submission) (Result, error) {
	if sub.Proposal == nil {
		return Result{}, fmt.Errorf("%w: no investment proposal", domain.ErrMissingContext)
	}
	if strings.TrimSpace(sub.StartupID) == "" {
		return Result{}, fmt.Errorf("%w: no startup selected", domain.ErrMissingContext)
	}

	investor, err := w.identity.RequireInvestor(ctx)
	if err != nil {
		return Result{}, contextError("current investor", err)
	}
	startup, err := w.startups.FindByID(ctx, sub.StartupID)
	if err != nil {
		return Result{}, contextError("startup "+sub.StartupID, err)
	}
	recipient := startup.Founder.RecipientID()
	if recipient == "" {
		return Result{}, fmt.Errorf("%w: startup %s has no founder contact", domain.ErrMissingContext, startup.ID)
	}

	proposal := *sub.Proposal
	if err := proposal.Validate(); err != nil {
		return Result{}, err
	}
	data := sub.Data.Normalize()
	if err := data.Validate(); err != nil {
		return Result{}, err
	}

	previous, err := store.Load[domain.Acknowledgment](ctx, w.store, store.InvestmentAcknowledgments)
	if err != nil {
		return Result{}, fmt.Errorf("%w: load acknowledgments: %w", domain.ErrSubmissionFailed, err)
	}

	ack := domain.Acknowledgment{
		ID:                 w.newID(),
		StartupID:          startup.ID,
		StartupName:        startup.IdeaName,
		InvestorID:         investor.ID,
		InvestorName:       investor.DisplayName(),
		OriginalInvestment: proposal,
		AcknowledgmentData: data,
		Status:             domain.StatusAcknowledged,
		SubmittedAt:        w.now().UTC(),
	}

	next := make([]domain.Acknowledgment, 0, len(previous)+1)
	next = append(append(next, previous...), ack)
	if err := store.Save(ctx, w.store, store.InvestmentAcknowledgments, next); err != nil {
		w.log.Error("acknowledgment write failed", "startup_id", startup.ID, "error", err)
		return Result{}, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}

	n, err := w.notifier.Notify(ctx, notification.NewNotification{
		RecipientID: recipient,
		StartupID:   startup.ID,
		Title:       fmt.Sprintf("New investment interest in %s", startup.IdeaName),
		Message:     interestMessage(ack),
		Data: domain.InvestmentInterest{
			InvestmentAmount: proposal.InvestmentAmount,
			InvestmentType:   proposal.InvestmentType,
			Timeline:         data.ExpectedTimeline,
			AcknowledgmentID: ack.ID,
			InvestorID:       investor.ID,
			InvestorName:     ack.InvestorName,
		},
	})
	if err != nil {
		w.log.Error("notification write failed, rolling back acknowledgment",
			"acknowledgment_id", ack.ID, "error", err)
		if rbErr := store.Save(ctx, w.store, store.InvestmentAcknowledgments, previous); rbErr != nil {
			w.log.Error("acknowledgment rollback failed", "acknowledgment_id", ack.ID, "error", rbErr)
		}
		return Result{}, fmt.Errorf("%w: notify founder: %w", domain.ErrSubmissionFailed, err)
	}

	w.log.Info("investment acknowledged",
		"acknowledgment_id", ack.ID,
		"startup_id", startup.ID,
		"investor_id", investor.ID,
		"notification_id", n.ID,
	)
	return Result{Acknowledgment: ack, Notification: n}, nil
}

// List returns every acknowledgment, oldest first
func (w *Workflow) List(ctx context.Context) ([]domain.Acknowledgment, error) {
	acks, err := store.Load[domain.Acknowledgment](ctx, w.store, store.InvestmentAcknowledgments)
	if err != nil {
		return nil, fmt.Errorf("load acknowledgments: %w", err)
	}
	return acks, nil
}

// ListForStartup returns the acknowledgments referencing startupID
func (w *Workflow) ListForStartup(ctx context.Context, startupID string) ([]domain.Acknowledgment, error) {
	acks, err := w.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Acknowledgment, 0, len(acks))
	for _, a := range acks {
		if a.StartupID == startupID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ToggleDueDiligence adds item when absent and removes it when present
func ToggleDueDiligence(set domain.DueDiligenceSet, item string) domain.DueDiligenceSet {
	return set.Toggle(item)
}

func interestMessage(ack domain.Acknowledgment) string {
	p := ack.OriginalInvestment
	return fmt.Sprintf("%s acknowledged a %s investment of %s in %s. Expected timeline: %s.",
		ack.InvestorName,
		p.InvestmentType.Label(),
		strconv.FormatFloat(p.InvestmentAmount, 'f', -1, 64),
		ack.StartupName,
		ack.AcknowledgmentData.ExpectedTimeline,
	)
}

// contextError maps lookups that found nothing to ErrMissingContext and
// anything else to ErrSubmissionFailed.
func contextError(what string, err error) error {
	if errors.Is(err, domain.ErrMissingContext) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s: %w", domain.ErrMissingContext, what, err)
	}
	return fmt.Errorf("%w: resolve %s: %w", domain.ErrSubmissionFailed, what, err)
}
