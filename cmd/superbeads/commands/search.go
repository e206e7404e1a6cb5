package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command: a direct keyword search
// over the archive, printing each match with its reason.
func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the archive for a keyword",
		Long: `Search session logs for a keyword (case-insensitive substring).
Small archives are matched on topic, keywords, and summary body; large
archives fall back to a raw line scan that also reaches transcripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := resolveProject()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			matches, err := newEngine(cfg, store).Search(cmd.Context(), root, args[0], nil)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sessions match %q\n", args[0])
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (matched on %s)\n",
					m.CreatedAt.Format("02-01-2006 15:04"), m.Topic, m.Reason)
			}
			return nil
		},
	}
}
