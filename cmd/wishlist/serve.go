package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/wishlistapp/accounts/internal/api"
	"github.com/wishlistapp/accounts/internal/core/credential"
	"github.com/wishlistapp/accounts/internal/core/service"
	"github.com/wishlistapp/accounts/internal/infrastructure/config"
	"github.com/wishlistapp/accounts/internal/infrastructure/queue"
	"github.com/wishlistapp/accounts/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  `Start the HTTP API on PORT using the store selected by STORE_DRIVER.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Pretty(),
		Service: "wishlist-accounts",
	})

	creds := credential.NewManager(cfg.BcryptCost)
	secret, err := jwtSecret(cfg, creds, log)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	audit := queue.NewAuditDispatcher(0, st.audit, logger.Component("audit"))
	audit.Start(context.Background())
	defer audit.Close()

	accounts := service.NewAccountService(
		st.users,
		audit,
		st.throttle,
		creds,
		service.AccountOptions{
			JWTSecret:   secret,
			TokenTTL:    cfg.TokenTTL,
			MaxFailures: cfg.Login.MaxFailures,
		},
		logger.Component("account"),
	)

	e := api.NewRouter(api.RouterConfig{
		Accounts:  accounts,
		JWTSecret: secret,
		Checks:    st.checks,
		Log:       logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return oops.Code("SERVER_FAILED").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}

// jwtSecret returns the configured signing secret. In development an
// ephemeral one is generated so tokens do not survive a restart.
func jwtSecret(cfg *config.Config, creds *credential.Manager, log zerolog.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	secret, err := creds.NewToken()
	if err != nil {
		return "", oops.Code("CONFIG_INVALID").Wrap(err)
	}
	log.Warn().Msg("JWT_SECRET not set, using an ephemeral development secret")
	return secret, nil
}
