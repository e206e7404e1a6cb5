package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/config"
	"github.com/EliaAlberti/superbeads/pkg/project"
	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
)

const version = "0.1.0"

// NewRootCommand creates the root command with all subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "superbeads",
		Short: "Archive and resume AI work sessions",
		Long: `superbeads keeps a per-project archive of work-session summaries
(CC-Session-Logs/*.md) and rebuilds resume context from it: project
memory, recent session summaries, and keyword-matched related sessions.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewCompressCommand())
	rootCmd.AddCommand(NewResumeCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewBrowseCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveProject finds the project root from the working directory and
// loads the effective configuration for it.
func resolveProject() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("resolve working directory: %w", err)
	}
	root := project.ResolveRoot(cwd)
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// newStore builds the session-log store from config.
func newStore(cfg *config.Config) (*sessionlog.Store, error) {
	return sessionlog.NewStore(sessionlog.WithExcludePatterns(cfg.Archive.ExcludePatterns...))
}

// newEngine builds the search engine, honoring a configured scan
// threshold override.
func newEngine(cfg *config.Config, store *sessionlog.Store) *sessionlog.SearchEngine {
	var opts []sessionlog.SearchOption
	if cfg.Retrieval.ScanThreshold > 0 {
		opts = append(opts, sessionlog.WithScanThreshold(cfg.Retrieval.ScanThreshold))
	}
	return sessionlog.NewSearchEngine(store, opts...)
}
