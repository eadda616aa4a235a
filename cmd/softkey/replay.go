package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"softkey/internal/config"
	"softkey/internal/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		jsonOut  bool
		parallel int
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay a keystroke trace and print the shift update per keystroke",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trace, err := replay.LoadTrace(args[0])
			if err != nil {
				return err
			}

			if watch {
				// Keep settings in step with the config file while replaying.
				loader := config.NewLoader(a.configPath)
				a.settings.Follow(loader)
				if err := loader.Watch(); err != nil {
					return err
				}
				defer loader.Close()
			}

			r := replay.New(a.settings, replay.WithLogger(a.logger), replay.WithWorkers(parallel))

			var outcomes []replay.Outcome
			if parallel > 1 {
				outcomes, err = r.RunParallel(cmd.Context(), trace)
			} else {
				outcomes, err = r.Run(cmd.Context(), trace)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), outcomes)
			}
			return writeTable(cmd.OutOrStdout(), outcomes)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print outcomes and summary as JSON")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "replay keystrokes on this many workers")
	cmd.Flags().BoolVar(&watch, "watch-config", false, "reload keyboard settings if the config file changes")
	return cmd
}

func writeJSON(w io.Writer, outcomes []replay.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Outcomes []replay.Outcome `json:"outcomes"`
		Summary  replay.Summary   `json:"summary"`
	}{outcomes, replay.Summarize(outcomes)})
}

func writeTable(w io.Writer, outcomes []replay.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tSHIFT STATE\tSTAGES\tSHIFT UPDATE")
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.Index, o.Key, o.ShiftState, o.Stages, o.ShiftUpdate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := replay.Summarize(outcomes)
	_, err := fmt.Fprintf(w, "\n%d keystrokes: %d no update, %d update now, %d update later\n",
		s.Keystrokes, s.NoUpdate, s.UpdateNow, s.UpdateLater)
	return err
}
