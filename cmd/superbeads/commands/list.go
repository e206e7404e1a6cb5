package commands

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
)

// NewListCommand creates the list command: a plain recency listing.
func NewListCommand() *cobra.Command {
	var (
		limit       int
		topicGlob   string
		withOutcome bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived session logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := resolveProject()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			refs, err := store.List(cmd.Context(), root)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No session logs yet")
				return nil
			}

			var topicFilter glob.Glob
			if topicGlob != "" {
				topicFilter, err = glob.Compile(topicGlob)
				if err != nil {
					return fmt.Errorf("invalid --topic pattern: %w", err)
				}
			}

			shown := 0
			for _, ref := range refs {
				if limit > 0 && shown == limit {
					break
				}
				if topicFilter != nil && !topicFilter.Match(ref.Topic) {
					continue
				}
				line := fmt.Sprintf("%s  %s", ref.CreatedAt.Format("02-01-2006 15:04"), ref.Topic)
				if withOutcome {
					if outcome := loadOutcome(cmd, store, ref); outcome != "" {
						line += "  — " + outcome
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No session logs match")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many logs (0 = all)")
	cmd.Flags().StringVar(&topicGlob, "topic", "", "Only logs whose topic matches this glob")
	cmd.Flags().BoolVar(&withOutcome, "outcome", false, "Read each summary and show its Outcome field")
	return cmd
}

// loadOutcome reads one log's summary region for its Outcome field.
// Failures degrade to an empty column rather than aborting the list.
func loadOutcome(cmd *cobra.Command, store *sessionlog.Store, ref sessionlog.Ref) string {
	content, err := store.Read(cmd.Context(), ref.Path)
	if err != nil {
		return ""
	}
	summary, _, _ := sessionlog.Split(content)
	return sessionlog.ParseQuickRef(summary).Outcome
}
