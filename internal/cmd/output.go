package cmd

import (
	"fmt"
	"io"
	"time"

	"frota/internal/domain"
	"frota/internal/services"
	"frota/internal/theme"
)

func printProgress(w io.Writer, p services.Progress) {
	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Done) / float64(p.Total) * 100
	}
	fmt.Fprintf(w, "%s %d/%d (%.0f%%) %s  last %s: %s\n",
		theme.SubtitleStyle.Render("▸"),
		p.Done, p.Total, pct,
		theme.MutedStyle.Render(p.Elapsed.Round(time.Second).String()),
		p.Last.Item.ID,
		theme.OutcomeStyle(p.Last.Kind).Render(p.Last.Kind.Label()))
}

// printReport renders the end-of-run report with bucket colors
func printReport(w io.Writer, r *domain.BatchReport) {
	fmt.Fprintln(w, theme.TitleStyle.Render(fmt.Sprintf("Report: %s", r.Workflow)))

	for _, kind := range domain.OutcomeKinds {
		n := len(r.Bucket(kind))
		fmt.Fprintf(w, "  %s %s\n",
			theme.LabelStyle.Render(fmt.Sprintf("%-24s", kind.Label())),
			theme.OutcomeStyle(kind).Render(fmt.Sprint(n)))
	}
	fmt.Fprintf(w, "  %s %s\n",
		theme.LabelStyle.Render(fmt.Sprintf("%-24s", "Success rate")),
		theme.HighlightStyle.Render(fmt.Sprintf("%.1f%%", r.SuccessRate()*100)))

	if len(r.CheckpointFailures) > 0 {
		fmt.Fprintf(w, "  %s %v\n", theme.ErrorStyle.Render("Checkpoint failures in batches"), r.CheckpointFailures)
	}

	for _, kind := range domain.OutcomeKinds {
		bucket := r.Bucket(kind)
		if kind == domain.OutcomeProcessed || len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", theme.OutcomeStyle(kind).Render(fmt.Sprintf("%s (%d)", kind.Label(), len(bucket))))
		for _, o := range bucket {
			fmt.Fprintf(w, "  - %s\n", o.Describe())
		}
	}
}
