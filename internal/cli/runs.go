package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/synthmc/internal/presentation/graph"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
	"github.com/aretw0/synthmc/pkg/synth"
)

// ListRuns prints one line per stored report.
func ListRuns(ctx context.Context, opts EngineOptions, w io.Writer) error {
	return withStore(opts, func(store ports.ReportStore) error {
		ids, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			printSystemMessage(w, "No runs recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tSTAGES\tSTEPS")
		for _, id := range ids {
			r, err := store.Load(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.ID, r.Status, len(r.Stages), len(r.Steps))
		}
		return tw.Flush()
	})
}

// ShowRun prints a stored report as JSON, or as a mermaid graph of the run.
func ShowRun(ctx context.Context, opts EngineOptions, id, format string, w io.Writer) error {
	return withStore(opts, func(store ports.ReportStore) error {
		r, err := store.Load(ctx, id)
		if err != nil {
			return err
		}

		switch format {
		case "", FormatJSON:
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		case FormatMermaid:
			p := synth.Build(r.Config)
			overlay := &graph.GraphOverlay{SelectedStages: r.Stages}
			if r.Status == domain.StatusAborted {
				overlay.FailedStage = lastStage(r)
			}
			_, err := fmt.Fprint(w, graph.GenerateMermaid(p.Stages, overlay))
			return err
		default:
			return fmt.Errorf("unknown format %q (supported: json, mermaid)", format)
		}
	})
}

// DeleteRun removes a stored report.
func DeleteRun(ctx context.Context, opts EngineOptions, id string, w io.Writer) error {
	return withStore(opts, func(store ports.ReportStore) error {
		if _, err := store.Load(ctx, id); err != nil {
			return err
		}
		if err := store.Delete(ctx, id); err != nil {
			return err
		}
		printSystemMessage(w, "Run '%s' deleted.", id)
		return nil
	})
}

func withStore(opts EngineOptions, fn func(ports.ReportStore) error) error {
	store, closeStore, err := OpenStore(opts)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}
