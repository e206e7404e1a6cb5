package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
	"github.com/EliaAlberti/superbeads/pkg/tui"
)

// NewBrowseCommand creates the browse command: the interactive archive
// browser.
func NewBrowseCommand() *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the session archive interactively",
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
			selected, err := tui.Browse(cmd.Context(), store, root)
			if err != nil {
				return err
			}
			if selected == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No session selected")
				return nil
			}

			content, err := store.Read(cmd.Context(), selected.Path)
			if err != nil {
				return err
			}
			summary, _, _ := sessionlog.Split(content)
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			if copyOut {
				if err := clipboard.WriteAll(summary); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "(copied to clipboard)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the selected summary to the clipboard")
	return cmd
}
