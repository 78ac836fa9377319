package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"breachvault/internal/app/server/api"
	"breachvault/internal/app/server/config"
	"breachvault/internal/app/server/crypto"
	"breachvault/internal/infrastructure/storage/postgres"
	"breachvault/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	wrapper, err := buildKeyWrapper(cfg)
	if err != nil {
		return fmt.Errorf("key wrapper init: %w", err)
	}
	if wrapper == nil {
		log.Warn("no master passphrase configured, item keys stored unwrapped")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}
	defer storage.Close()

	mux := api.New(cfg, storage, wrapper, log)

	server := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", cfg.Server.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildKeyWrapper derives the master key for envelope encryption. The
// passphrase comes from the environment or, when running interactively,
// from a terminal prompt. Without one the server runs with unwrapped keys.
func buildKeyWrapper(cfg *config.Config) (*crypto.KeyWrapper, error) {
	passphrase := cfg.Crypto.MasterPassphrase

	if passphrase == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Master passphrase (empty to skip key wrapping): ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		passphrase = string(raw)
	}

	if passphrase == "" {
		return nil, nil
	}

	return crypto.NewKeyWrapper(passphrase, cfg.Crypto.MasterSalt)
}
