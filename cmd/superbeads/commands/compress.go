package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/EliaAlberti/superbeads/pkg/config"
	"github.com/EliaAlberti/superbeads/pkg/logging"
	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
	"github.com/EliaAlberti/superbeads/pkg/summarizer"
	"github.com/EliaAlberti/superbeads/pkg/tokenizer"
)

// NewCompressCommand creates the compress command: the write path.
func NewCompressCommand() *cobra.Command {
	var (
		topic          string
		transcriptPath string
		offline        bool
	)

	cmd := &cobra.Command{
		Use:   "compress [document.md]",
		Short: "Archive a session summary as a new session log",
		Long: `Archive a work session into CC-Session-Logs/.

With a document argument (or '-' for stdin) the file is taken as a
finished session-log markdown document and written as-is; --topic names
it. With --transcript the raw transcript is summarized first (via the
configured model, or a built-in heuristic with --offline) and the
canonical document is composed around it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, _ := logging.NewLogger("compress")
			defer log.Close()

			root, cfg, err := resolveProject()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			var content, rawTranscript string
			switch {
			case transcriptPath != "":
				content, topic, rawTranscript, err = composeFromTranscript(cmd, cfg, transcriptPath, topic, offline)
				if err != nil {
					return err
				}
			case len(args) == 1:
				content, err = readDocument(args[0], cmd.InOrStdin())
				if err != nil {
					return err
				}
				if topic == "" {
					return fmt.Errorf("--topic is required when archiving a finished document")
				}
			default:
				return fmt.Errorf("nothing to archive: pass a document, '-' for stdin, or --transcript")
			}

			path, err := store.Write(cmd.Context(), root, time.Now(), topic, content)
			if err != nil {
				return err
			}
			log.Infof("archived session log %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", path)
			reportTokensSaved(cmd, content, rawTranscript)
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Topic slug for the log filename")
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "Raw transcript file to summarize and archive")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the built-in heuristic summarizer instead of the configured model")
	return cmd
}

// composeFromTranscript drafts a summary for the transcript and builds
// the canonical document around it. Returns content, topic, raw.
func composeFromTranscript(cmd *cobra.Command, cfg *config.Config, transcriptPath, topic string, offline bool) (string, string, string, error) {
	raw, err := readDocument(transcriptPath, cmd.InOrStdin())
	if err != nil {
		return "", "", "", err
	}
	s, err := selectSummarizer(cfg, offline)
	if err != nil {
		return "", "", "", err
	}
	draft, err := s.Summarize(cmd.Context(), raw)
	if err != nil {
		return "", "", "", err
	}
	if topic == "" {
		topic = draft.Topic
	}
	content := sessionlog.Compose(sessionlog.Document{
		Title:    topic,
		Keywords: draft.Keywords,
		Projects: draft.Projects,
		Outcome:  draft.Outcome,
		Summary:  draft.Summary,
		Raw:      raw,
	})
	return content, topic, raw, nil
}

// selectSummarizer picks the configured OpenAI drafter, falling back
// to the heuristic when offline was requested or no API key is set.
func selectSummarizer(cfg *config.Config, offline bool) (summarizer.Summarizer, error) {
	if offline {
		return summarizer.Heuristic{}, nil
	}
	apiKey := os.Getenv(cfg.Summarizer.APIKeyEnv)
	if apiKey == "" {
		return summarizer.Heuristic{}, nil
	}
	opts := []summarizer.OpenAIOption{summarizer.WithModel(cfg.Summarizer.Model)}
	if cfg.Summarizer.BaseURL != "" {
		opts = append(opts, summarizer.WithBaseURL(cfg.Summarizer.BaseURL))
	}
	return summarizer.NewOpenAI(apiKey, opts...)
}

// readDocument reads a file, or stdin when the path is "-".
func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(b), nil
}

// reportTokensSaved prints the raw-vs-summary token difference when a
// transcript was compressed and the tokenizer is available.
func reportTokensSaved(cmd *cobra.Command, content, rawTranscript string) {
	if rawTranscript == "" {
		return
	}
	tok, err := tokenizer.New()
	if err != nil {
		return
	}
	summary, _, _ := sessionlog.Split(content)
	saved := tok.CountTokens(rawTranscript) - tok.CountTokens(summary)
	if saved > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Summary is %d tokens smaller than the raw transcript\n", saved)
	}
}
