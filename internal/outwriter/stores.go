package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// WriteSnapshotList outputs stored snapshot metadata, dispatching on the
// configured output format.
func WriteSnapshotList(infos []schema.SnapshotInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"namespace", "scope_date", "generated_at", "historical", "size_bytes", "path"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, info := range infos {
					rec := []string{
						info.Namespace,
						info.ScopeDate,
						info.GeneratedAt.Format(contract.DateTimeFormat),
						strconv.FormatBool(info.IsHistorical),
						strconv.FormatInt(info.SizeBytes, 10),
						info.Path,
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(infos, w)
		}, "Wrote table")
	}
}

func writeSnapshotTable(infos []schema.SnapshotInfo, writer io.Writer) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(writer, "No snapshots stored.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Namespace", "Scope Date", "Generated At", "Size"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, info := range infos {
		data = append(data, []string{
			info.Namespace,
			info.ScopeDate,
			info.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.1f KB", float64(info.SizeBytes)/1024.0),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteRunStatus outputs the run-history store status.
func WriteRunStatus(status schema.RunStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend: %s (connected: %t)\n", status.Backend, status.Connected); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns); err != nil {
			return err
		}
		if status.TotalRuns > 0 {
			if _, err := fmt.Fprintf(w, "Last run: #%d at %s\n",
				status.LastRunID, status.LastRunTime.Local().Format("2006-01-02 15:04:05")); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}

// WriteRunList outputs the full run history as a table or JSON.
func WriteRunList(records []schema.RunRecord, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "No runs recorded.")
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Run", "Started", "Duration", "Spaces", "Members", "Tasks", "Health", "Source"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, r := range records {
			duration := "-"
			if r.DurationMs != nil {
				duration = (time.Duration(*r.DurationMs) * time.Millisecond).String()
			}
			data = append(data, []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Local().Format("2006-01-02 15:04:05"),
				duration,
				r.Spaces,
				strconv.Itoa(r.MemberCount),
				strconv.Itoa(r.TaskCount),
				fmt.Sprintf("%.1f", r.HealthScore),
				r.Source,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}, "Wrote table")
}
