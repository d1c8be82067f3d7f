package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"folio/service"

	"github.com/spf13/cobra"
)

func newSubmissionsCommand(opts *options) *cobra.Command {
	var yes bool

	maintenance := func(cmd *cobra.Command) *service.Maintenance {
		return &service.Maintenance{
			DBPath: opts.config.DB.Path,
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
			Yes:    yes,
		}
	}

	submissionsCmd := &cobra.Command{
		Use:   "submissions",
		Short: "Manage stored contact form submissions",
	}
	submissionsCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := maintenance(cmd).List(limit, offset)
			return err
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of submissions")
	listCmd.Flags().IntVar(&offset, "offset", 0, "number of submissions to skip")

	var dir string
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := maintenance(cmd).Backup(dir)
			return err
		},
	}
	backupCmd.Flags().StringVar(&dir, "dir", "data/backups", "directory for backup files")

	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ignoreCancel(maintenance(cmd).Restore(args[0]))
		},
	}

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ignoreCancel(maintenance(cmd).Clean())
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = maintenance(cmd).Show(id)
			return err
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ignoreCancel(maintenance(cmd).Delete(id))
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every submission but keep the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ignoreCancel(maintenance(cmd).Purge())
		},
	}

	submissionsCmd.AddCommand(listCmd, showCmd, deleteCmd, purgeCmd, backupCmd, restoreCmd, cleanCmd)
	return submissionsCmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid submission id %q", arg)
	}
	return id, nil
}

// ignoreCancel treats a declined prompt as a successful no-op.
func ignoreCancel(err error) error {
	if errors.Is(err, service.ErrCancelled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("submissions: %w", err)
	}
	return nil
}
