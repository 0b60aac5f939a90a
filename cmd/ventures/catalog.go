package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/pbaille/ventures/internal/app"
	"github.com/pbaille/ventures/internal/catalog"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/seed"
	"github.com/pbaille/ventures/internal/store"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Import startups and the current user from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := getStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := seed.ImportFile(ctx, s, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d startups\n", res.Startups)
			if res.CurrentUser {
				fmt.Println("Current user replaced")
			}
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				u, err := a.Identity.Current(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("%s <%s> (%s)\n", u.DisplayName(), u.Email, u.Role)
				fmt.Printf("ID: %s\n", u.ID)
				return nil
			})
		},
	}
}

func startupsCmd() *cobra.Command {
	var viability string

	cmd := &cobra.Command{
		Use:   "startups [query]",
		Short: "Search the startup catalog by name or industry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				ideas, err := a.Catalog.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				ideas = catalog.FilterByViability(ideas, domain.ViabilityLevel(viability))

				if len(ideas) == 0 {
					fmt.Println("No matching startups found.")
					return nil
				}

				for _, idea := range ideas {
					fmt.Printf("%-10s %3d  %-9s %-14s %s\n",
						shortID(idea.ID),
						displayScore(idea),
						idea.ViabilityLevel,
						truncate(idea.Industry, 14),
						truncate(idea.IdeaName, 40),
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&viability, "viability", "", "only High, Moderate or Low")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show startup details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				idea, err := a.Catalog.FindByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				watched, err := a.Watchlist.Contains(cmd.Context(), idea.ID)
				if err != nil {
					return err
				}

				fmt.Printf("ID:        %s\n", idea.ID)
				fmt.Printf("Name:      %s\n", idea.IdeaName)
				fmt.Printf("Industry:  %s\n", idea.Industry)
				fmt.Printf("Stage:     %s\n", idea.Stage)
				fmt.Printf("Score:     %d (%s)\n", displayScore(idea), idea.ViabilityLevel)
				fmt.Printf("Founder:   %s %s <%s>\n", idea.Founder.FirstName, idea.Founder.LastName, idea.Founder.Email)
				if !idea.CreatedAt.IsZero() {
					fmt.Printf("Created:   %s\n", idea.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				fmt.Printf("Watched:   %t\n", watched)
				if idea.Description != "" {
					fmt.Printf("\n%s\n", idea.Description)
				}
				return nil
			})
		},
	}
}

func collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List stored collections (sqlite backend)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := getStore(ctx)
			if err != nil {
				return err
			}
			defer h.Close()

			s, ok := h.(*store.Store)
			if !ok {
				return fmt.Errorf("collections listing needs the sqlite backend")
			}
			infos, err := s.ListCollections(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No collections yet. Use 'ventures seed' to create some.")
				return nil
			}
			for _, ci := range infos {
				fmt.Printf("%-28s %5d records  v%-4d %s\n",
					ci.Name, ci.Records, ci.Version, ci.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func displayScore(idea domain.StartupIdea) int {
	return int(math.Round(idea.ValidationScore.Normalized()))
}
