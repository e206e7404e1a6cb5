package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/project"
	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
)

// NewDoctorCommand creates the doctor command: an archive health
// check.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the health of the session archive",
		Long: `Inspect the archive and report: total logs, files with malformed
names, logs missing a Quick Reference block or raw-transcript marker,
and whether a project memory file exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := resolveProject()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project root: %s\n", root)

			if mem, err := project.LoadMemory(root); err == nil {
				fmt.Fprintf(out, "Project memory: %s (%d sections)\n", mem.Name, len(mem.Sections))
			} else if errors.Is(err, project.ErrNoMemory) {
				fmt.Fprintln(out, "Project memory: none found")
			} else {
				return err
			}

			dir := sessionlog.ArchiveDir(root)
			entries, err := os.ReadDir(dir)
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "Archive: not created yet")
				return nil
			}
			if err != nil {
				return err
			}

			var total, malformed, missingQuickRef, missingMarker int
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
					continue
				}
				total++
				if _, _, err := sessionlog.DecodeName(e.Name()); err != nil {
					malformed++
					fmt.Fprintf(out, "  malformed name: %s\n", e.Name())
					continue
				}
				content, err := store.Read(cmd.Context(), filepath.Join(dir, e.Name()))
				if err != nil {
					continue
				}
				summary, _, hasRaw := sessionlog.Split(content)
				qr := sessionlog.ParseQuickRef(summary)
				if len(qr.Keywords) == 0 && qr.Outcome == "" {
					missingQuickRef++
					fmt.Fprintf(out, "  no quick reference: %s\n", e.Name())
				}
				if !hasRaw {
					missingMarker++
				}
			}

			fmt.Fprintf(out, "Archive: %d logs (%d malformed names, %d without quick reference, %d without raw transcript)\n",
				total, malformed, missingQuickRef, missingMarker)
			if malformed == 0 && missingQuickRef == 0 {
				fmt.Fprintln(out, "Archive looks healthy")
			}
			return nil
		},
	}
}
