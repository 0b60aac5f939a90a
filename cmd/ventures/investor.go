package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/ventures/internal/acknowledgment"
	"github.com/pbaille/ventures/internal/app"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/watchlist"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage the investor watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [startup-id]",
		Short: "Track a startup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				idea, err := a.Catalog.FindByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				item, err := a.Watchlist.Add(cmd.Context(), idea)
				if err != nil {
					return err
				}
				fmt.Printf("Watching %s since %s\n", item.IdeaName, item.AddedAt.Format("2006-01-02 15:04"))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm [startup-id]",
		Aliases: []string{"remove"},
		Short:   "Stop tracking a startup",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				removed, err := a.Watchlist.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if removed {
					fmt.Printf("Removed %s\n", args[0])
				} else {
					fmt.Printf("%s was not on the watchlist\n", args[0])
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked startups with a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				items, err := a.Watchlist.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Println("Watchlist is empty. Use 'ventures watch add' to track a startup.")
					return nil
				}

				for _, item := range items {
					fmt.Printf("%-10s %3d  %-14s %s\n",
						shortID(item.ID), displayScore(item.StartupIdea), truncate(item.Industry, 14), truncate(item.IdeaName, 40))
				}

				sum := watchlist.Summarize(items)
				fmt.Printf("\n%d startups, average score %d, %d industries (%s)\n",
					sum.Count, sum.AverageScore, sum.DistinctIndustries, strings.Join(sum.Industries, ", "))
				return nil
			})
		},
	})

	return cmd
}

func investCmd() *cobra.Command {
	var (
		amount    float64
		invType   string
		timeFrame string
		timeline  string
		dd        []string
		contact   string
		notes     string
		nextSteps string
	)

	cmd := &cobra.Command{
		Use:   "invest [startup-id]",
		Short: "Acknowledge an investment proposal and notify the founder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var proposal *domain.InvestmentProposal
			if cmd.Flags().Changed("amount") {
				proposal = &domain.InvestmentProposal{
					InvestmentAmount: amount,
					InvestmentType:   domain.InvestmentType(invType),
					TimeFrame:        timeFrame,
				}
			}

			// Repeating --dd toggles, so listing an item twice deselects it.
			selected := domain.DueDiligenceSet{}
			for _, item := range dd {
				selected = acknowledgment.ToggleDueDiligence(selected, strings.TrimSpace(item))
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				res, err := a.Acknowledgments.Submit(cmd.Context(), acknowledgment.Submission{
					StartupID: args[0],
					Proposal:  proposal,
					Data: domain.AcknowledgmentData{
						InvestorNotes:     notes,
						ExpectedTimeline:  domain.Timeline(timeline),
						DueDiligenceItems: selected,
						NextSteps:         nextSteps,
						ContactPreference: domain.ContactPreference(contact),
					},
				})
				if err != nil {
					return err
				}

				fmt.Printf("Acknowledged: %s\n", res.Acknowledgment.ID)
				fmt.Printf("Founder notified: %s\n", res.Notification.RecipientID)
				return nil
			})
		},
	}

	timelines := make([]string, len(domain.Timelines))
	for i, t := range domain.Timelines {
		timelines[i] = string(t)
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "investment amount (required)")
	cmd.Flags().StringVar(&invType, "type", string(domain.InvestmentEquity), "equity, convertible_note, safe, loan or revenue_share")
	cmd.Flags().StringVar(&timeFrame, "time-frame", "", "proposal time frame")
	cmd.Flags().StringVar(&timeline, "timeline", string(domain.TimelineOneToTwoMonths), "expected timeline: "+strings.Join(timelines, " | "))
	cmd.Flags().StringArrayVar(&dd, "dd", nil, "due-diligence item (repeatable): "+strings.Join(domain.DueDiligenceChecklist, ", "))
	cmd.Flags().StringVar(&contact, "contact", string(domain.ContactEmail), "email, phone or video")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the founder")
	cmd.Flags().StringVar(&nextSteps, "next-steps", "", "proposed next steps")
	return cmd
}

func acksCmd() *cobra.Command {
	var startupID string

	cmd := &cobra.Command{
		Use:   "acks",
		Short: "List investment acknowledgments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				var (
					acks []domain.Acknowledgment
					err  error
				)
				if startupID != "" {
					acks, err = a.Acknowledgments.ListForStartup(cmd.Context(), startupID)
				} else {
					acks, err = a.Acknowledgments.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				if len(acks) == 0 {
					fmt.Println("No acknowledgments yet.")
					return nil
				}

				for _, ack := range acks {
					p := ack.OriginalInvestment
					fmt.Printf("%s  %s  %-20s %-16s %.2f %s (%s)\n",
						shortID(ack.ID),
						ack.SubmittedAt.Format("2006-01-02"),
						truncate(ack.StartupName, 20),
						truncate(ack.InvestorName, 16),
						p.InvestmentAmount,
						p.InvestmentType.Label(),
						ack.AcknowledgmentData.ExpectedTimeline,
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startupID, "startup", "", "only this startup")
	return cmd
}
