package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbaille/ventures/internal/app"
	"github.com/pbaille/ventures/internal/config"
	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/logger"
	"github.com/pbaille/ventures/internal/pitch"
	"github.com/pbaille/ventures/internal/store"
)

var (
	cfg config.Config
	log *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ventures",
		Short:         "Startup catalog, investor watchlist and investment acknowledgments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "database path (sqlite backend)")
	flags.StringVar((*string)(&cfg.Backend), "backend", string(cfg.Backend), "record store backend: sqlite, redis or memory")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address (redis backend)")
	flags.StringVar(&cfg.LogMode, "log-mode", cfg.LogMode, "log mode: dev or prod")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l
		return nil
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(startupsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(investCmd())
	rootCmd.AddCommand(acksCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(pitchCmd())
	rootCmd.AddCommand(collectionsCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	if log != nil {
		log.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

// describe prefixes the failure class the user can act on
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingContext):
		return "missing context (" + err.Error() + ")"
	case errors.Is(err, domain.ErrSubmissionFailed):
		return "submission failed, retry the command (" + err.Error() + ")"
	case errors.Is(err, domain.ErrGenerationFailed):
		return "pitch generation failed, try again (" + err.Error() + ")"
	}
	return err.Error()
}

func getStore(ctx context.Context) (store.Handle, error) {
	return store.Open(ctx, cfg.StoreOptions())
}

// withApp opens the store, wires the components and runs fn
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	s, err := getStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var gen pitch.Generator
	if anthropic, err := pitch.NewAnthropic(cfg.AnthropicKey, cfg.PitchModel, cfg.PitchTimeout); err == nil {
		gen = anthropic
	} else {
		log.Debug("pitch generator disabled", "reason", err)
	}

	return fn(app.New(s, gen, log))
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
