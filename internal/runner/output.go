package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/render"
)

// PrintSummary writes a one-line summary of res, plus the error of a
// failed extraction.
func PrintSummary(w io.Writer, res Result) {
	if res.Failed() {
		fmt.Fprintf(w, "✗ %-10s %-50s  %s\n", res.Kind.Label(), truncate(res.Target, 50), formatDuration(res.Duration))
		fmt.Fprintf(w, "  └ Error: %s\n", res.Error)
		return
	}

	line := fmt.Sprintf("✓ %-10s %-50s  %s  %s", res.Kind.Label(), truncate(res.Target, 50),
		formatDuration(res.Duration), humanize.Bytes(uint64(res.Size)))
	if res.Items > 0 {
		line += fmt.Sprintf("  %s items", humanize.Comma(int64(res.Items)))
	}
	fmt.Fprintln(w, line)
}

// PrintText writes the result in view v. color enables syntax
// highlighting. A failed result prints nothing.
func PrintText(w io.Writer, res Result, v render.View, color bool) {
	if res.Result == nil {
		return
	}
	text := render.Text(res.Result, v)
	if color {
		text = render.Styled(res.Result, v)
	}
	fmt.Fprintln(w, text)
}

// PrintJSON outputs res as JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintHistory lists records newest first, one per line.
func PrintHistory(w io.Writer, records []history.Record, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No extractions yet.")
		return
	}
	for _, r := range records {
		icon := "✓"
		if !r.Completed() {
			icon = "✗"
		}
		fmt.Fprintf(w, "%s %-8s  %-10s %-50s  %s\n",
			icon, shortID(r.ID), r.Kind.Label(), truncate(r.Target, 50),
			humanize.RelTime(r.Timestamp, now, "ago", "from now"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "History: %d of %d entries\n", len(records), history.MaxEntries)
}

// PrintRecord writes the details of one record followed by its result
// in view v.
func PrintRecord(w io.Writer, rec history.Record, v render.View, color bool) error {
	fmt.Fprintf(w, "ID:      %s\n", rec.ID)
	fmt.Fprintf(w, "Kind:    %s\n", rec.Kind.Label())
	fmt.Fprintf(w, "Target:  %s\n", rec.Target)
	fmt.Fprintf(w, "Time:    %s\n", rec.Timestamp.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "Status:  %s\n", rec.Status)
	if !rec.Completed() {
		fmt.Fprintf(w, "Error:   %s\n", rec.Error)
		return nil
	}

	res, err := api.ParseResult(rec.Kind, rec.Result)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	PrintText(w, Result{Result: res}, v, color)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
