package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/spf13/cobra"
)

// storectl keys
func newKeysCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every key in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := sess.store.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(sess.out, key)
			}

			return nil
		},
	}
}

// storectl get <key>
func newGetCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the JSON value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := sess.store.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, repository.ErrKeyNotFound) {
					return errors.Errorf("key %q not found", args[0])
				}

				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, value, "", "  "); err != nil {
				// Not JSON; print it as stored.
				fmt.Fprintln(sess.out, string(value))

				return nil
			}
			fmt.Fprintln(sess.out, pretty.String())

			return nil
		},
	}
}

// storectl delete <key>...
func newDeleteCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete one or more keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range args {
				if err := sess.store.Delete(cmd.Context(), key); err != nil {
					return errors.Wrapf(err, "failed to delete %s", key)
				}
			}
			fmt.Fprintf(sess.out, "deleted %d key(s)\n", len(args))

			return nil
		},
	}
}

// storectl reset --yes
func newResetCmd(sess *session) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every key, returning the profile to its demo state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("reset deletes the whole profile; pass --yes to confirm")
			}

			keys, err := sess.store.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := sess.store.Delete(cmd.Context(), key); err != nil {
					return errors.Wrapf(err, "failed to delete %s", key)
				}
			}
			sess.logger.Info("Profile store reset", slog.Int("keys", len(keys)))
			fmt.Fprintf(sess.out, "removed %d key(s)\n", len(keys))

			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the reset")

	return cmd
}
