package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wordgrid/pkg/types"
)

func newPredictCmd(g *globalFlags) *cobra.Command {
	var (
		history []string
		start   bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "predict [sentence words...]",
		Short: "Print one candidate set for a sentence",
		Example: "  wordgrid predict I want\n" +
			"  wordgrid predict --history 'a:Do you want some tea?' --sentence-start",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, cmd.Flags())
			if err != nil {
				return err
			}
			log, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			eng, err := newEngine(cfg, log)
			if err != nil {
				return err
			}
			defer eng.Close()

			msgs, err := parseHistory(history)
			if err != nil {
				return err
			}
			req := types.WordRequest{
				ChatHistory:     msgs,
				CurrentSentence: args,
				IsSentenceStart: start || len(args) == 0,
			}
			res, err := eng.mgr.Words(context.Background(), req)
			if err != nil {
				return err
			}
			return printWords(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().StringArrayVar(&history, "history", nil, "Chat message as u:text or a:text (repeatable, oldest first)")
	cmd.Flags().BoolVar(&start, "sentence-start", false, "Predict the first word of a new sentence")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")
	return cmd
}

// parseHistory turns "u:text" / "a:text" flags into chat messages.
func parseHistory(in []string) ([]types.ChatMessage, error) {
	out := make([]types.ChatMessage, 0, len(in))
	for _, h := range in {
		who, text, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("history %q: want u:text or a:text", h)
		}
		switch who {
		case "u", "user":
			out = append(out, types.ChatMessage{Text: text, IsUser: true})
		case "a", "assistant":
			out = append(out, types.ChatMessage{Text: text})
		default:
			return nil, fmt.Errorf("history %q: unknown speaker %q", h, who)
		}
	}
	return out, nil
}

func printWords(w io.Writer, res types.WordResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	for i, word := range res.Words {
		if _, err := fmt.Fprintf(w, "%2d  %s\n", i+1, word); err != nil {
			return err
		}
	}
	return nil
}

