package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiachain/migrator/internal/storage/journal"
	"github.com/aiachain/migrator/internal/tui"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print journaled migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// an empty dir falls back to the journal default
			store, err := journal.NewWALStore(cfg.JournalDir)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Records()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.Banner())
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(records))
			return nil
		},
	}
}
