package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/domain/repository"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/store"

	"github.com/spf13/cobra"
)

// storeOpener opens the profile store chosen by the config plus flag overrides.
type storeOpener func(ctx context.Context, overrides storeFlags) (repository.Store, *config.Config, *slog.Logger, error)

type storeFlags struct {
	driver string
	path   string
}

func (f storeFlags) apply(cfg *config.Config) {
	if f.driver != "" {
		cfg.Store.Driver = f.driver
	}
	if f.path != "" {
		cfg.Store.Path = f.path
	}
}

func openConfiguredStore(ctx context.Context, overrides storeFlags) (repository.Store, *config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, nil, err
	}
	overrides.apply(cfg)

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return s, cfg, logger, nil
}

// session is what every subcommand runs against.
type session struct {
	store  repository.Store
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

func newRootCmd(open storeOpener) *cobra.Command {
	var flags storeFlags
	sess := &session{}

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Inspect and reset a storefront profile store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, cfg, logger, err := open(cmd.Context(), flags)
			if err != nil {
				return err
			}
			sess.store, sess.cfg, sess.logger = s, cfg, logger
			sess.out = cmd.OutOrStdout()

			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if sess.store == nil {
				return nil
			}

			return sess.store.Close()
		},
	}

	root.PersistentFlags().StringVar(&flags.driver, "driver", "", "store driver override (memory, file, redis, postgres)")
	root.PersistentFlags().StringVar(&flags.path, "path", "", "profile directory override for the file driver")

	root.AddCommand(
		newKeysCmd(sess),
		newGetCmd(sess),
		newDeleteCmd(sess),
		newCartCmd(sess),
		newOrdersCmd(sess),
		newResetCmd(sess),
	)

	return root
}
