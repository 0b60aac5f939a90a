package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pbaille/ventures/internal/api"
	"github.com/pbaille/ventures/internal/app"
	"github.com/pbaille/ventures/internal/pitch"
)

func pitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pitch [startup-id]",
		Short: "Generate a pitch and print it in clipboard format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				idea, err := a.Catalog.FindByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				fmt.Print("Generating... ")
				content, err := a.Pitch.Generate(cmd.Context(), idea)
				if err != nil {
					fmt.Println("failed")
					return err
				}
				fmt.Print("done\n\n")

				fmt.Println(pitch.ExportText(content))
				return nil
			})
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LogMode == "prod" || cfg.LogMode == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			// Note: withApp keeps the store open for as long as the server runs
			return withApp(cmd.Context(), func(a *app.App) error {
				server := api.New(a.APIDeps(), log)
				if err := server.Run(cmd.Context(), cfg.HTTPAddr); err != nil {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&cfg.HTTPAddr, "addr", "a", cfg.HTTPAddr, "server address")
	return cmd
}
