package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/logging"
	"github.com/EliaAlberti/superbeads/pkg/retrieval"
	"github.com/EliaAlberti/superbeads/pkg/tokenizer"
)

// NewResumeCommand creates the resume command: the read path.
func NewResumeCommand() *cobra.Command {
	var (
		recent   int
		topic    string
		copyOut  bool
		colorize bool
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Assemble resume context from the session archive",
		Long: `Assemble resume context: project memory, the latest session's
summary, briefs of the remaining recent sessions, and, with --topic,
related sessions matched by keyword.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, _ := logging.NewLogger("resume")
			defer log.Close()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			_, cfg, err := resolveProject()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			// An explicit -n 0 is a real request for zero sessions; only
			// an unset flag falls back to the configured window.
			if !cmd.Flags().Changed("recent") {
				recent = cfg.Retrieval.RecentCount
			}

			tok, err := tokenizer.New()
			if err != nil {
				log.Warnf("tokenizer unavailable, reporting no token counts: %v", err)
				tok = nil
			}
			retriever := retrieval.NewRetriever(store, newEngine(cfg, store), tok)
			report, err := retriever.Retrieve(cmd.Context(), cwd, retrieval.Query{
				RecentCount: recent,
				Topic:       topic,
			})
			if err != nil {
				return err
			}
			log.Infof("assembled report: memory=%v found=%d/%d related=%d",
				report.HasMemory(), report.Found, report.Requested, len(report.Related))

			out := RenderReport(report, colorize)
			fmt.Fprint(cmd.OutOrStdout(), out)
			if copyOut {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "\n(copied to clipboard)")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "Number of recent sessions to load (unset: config default; 0 loads none; max 50)")
	cmd.Flags().StringVar(&topic, "topic", "", "Keyword for the related-sessions search")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the rendered report to the clipboard")
	cmd.Flags().BoolVar(&colorize, "color", false, "Highlight fenced code blocks for the terminal")
	return cmd
}
