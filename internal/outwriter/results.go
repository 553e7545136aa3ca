package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"teampulse/internal/contract"
	"teampulse/internal/parquet"
	"teampulse/schema"
)

// WriteAnalysisResult outputs the analysis result, dispatching based on the
// output format configured.
func WriteAnalysisResult(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeResultJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeResultCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteMemberRowsParquet(parquet.ConvertMembers(result), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultReport(result, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// writeResultJSON handles opening the file and calling the JSON writer.
func writeResultJSON(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeResultCSV writes one row per member, ranked by workload score.
func writeResultCSV(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"member",
		"score",
		"base_score",
		"status",
		"active",
		"urgent",
		"high_priority",
		"due_soon",
		"estimate_minutes",
		"spent_minutes",
		"projects",
		"scope_date",
		"source",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for i, m := range result.SortedMembers() {
				rec := []string{
					strconv.Itoa(i + 1),
					m.Username,
					fmtFloat(m.WorkloadScore),
					fmtFloat(m.BaseScore),
					contract.GetPlainLabel(m.Status),
					fmt.Sprintf(intFmt, m.ActiveTasks),
					fmt.Sprintf(intFmt, m.UrgentTasks),
					fmt.Sprintf(intFmt, m.HighPriorityTasks),
					fmt.Sprintf(intFmt, m.DueSoonTasks),
					fmt.Sprintf(intFmt, m.EstimateMinutes),
					fmt.Sprintf(intFmt, m.SpentMinutes),
					strings.Join(m.Projects, "|"),
					result.ScopeDate,
					string(result.Source),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeResultReport generates and writes the human-readable report: the
// ranked member table followed by overview, timeline and recommendations.
func writeResultReport(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if err := writeMemberTable(result, cfg, fmtFloat, writer); err != nil {
		return err
	}
	if err := writeOverviewSection(result, fmtFloat, writer); err != nil {
		return err
	}
	if err := writeTimelineSection(result, writer); err != nil {
		return err
	}
	if err := writeRecommendationSection(result, writer); err != nil {
		return err
	}
	if err := writeSummarySection(result, writer); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "\nAnalysis of %s completed in %v (source: %s)\n",
		strings.Join(result.Spaces, ", "), duration.Round(time.Millisecond), result.Source)
	return err
}

func writeMemberTable(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Member", "Score", "Status", "Active", "Urgent", "High", "Due Soon", "Est", "Spent", "Projects"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := maxNameWidth(terminalWidth(cfg))
	var data [][]string
	for i, m := range result.SortedMembers() {
		label := contract.GetPlainLabel(m.Status)
		if cfg.UseColors {
			label = contract.GetColorLabel(m.Status)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(m.Username, nameWidth),
			fmtFloat(m.WorkloadScore),
			label,
			strconv.Itoa(m.ActiveTasks),
			strconv.Itoa(m.UrgentTasks),
			strconv.Itoa(m.HighPriorityTasks),
			strconv.Itoa(m.DueSoonTasks),
			contract.FormatMinutes(m.EstimateMinutes),
			contract.FormatMinutes(m.SpentMinutes),
			strconv.Itoa(m.ProjectsCount),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeOverviewSection(result *schema.AnalysisResult, fmtFloat func(float64) string, writer io.Writer) error {
	ov := result.Overview
	if _, err := fmt.Fprintf(writer, "\nTeam health: %s (%s) | members: %d | active: %d | urgent: %d | due soon: %d | avg score: %s\n",
		fmtFloat(ov.HealthScore), contract.GetHealthLabel(ov.HealthScore),
		ov.TotalMembers, ov.TotalActiveTasks, ov.TotalUrgentTasks, ov.TotalDueSoonTasks,
		fmtFloat(ov.AverageScore)); err != nil {
		return err
	}
	lb := result.LoadBalance
	if lb.HighestMember != "" {
		if _, err := fmt.Fprintf(writer, "Load spread: %s (%s) to %s (%s)\n",
			lb.HighestMember, fmtFloat(lb.HighestScore),
			lb.LowestMember, fmtFloat(lb.LowestScore)); err != nil {
			return err
		}
	}
	return nil
}

func writeTimelineSection(result *schema.AnalysisResult, writer io.Writer) error {
	tl := result.Timeline
	if len(tl.OverdueTasks) == 0 && len(tl.UrgentTasks) == 0 && len(tl.UpcomingTasks) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(writer, "Deadlines: %d overdue, %d urgent, %d upcoming\n",
		len(tl.OverdueTasks), len(tl.UrgentTasks), len(tl.UpcomingTasks)); err != nil {
		return err
	}
	for _, t := range tl.OverdueTasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(contract.DateFormat)
		}
		if _, err := fmt.Fprintf(writer, "  OVERDUE %s (%s, due %s)\n", t.Name, t.ProjectName, due); err != nil {
			return err
		}
	}
	return nil
}

func writeRecommendationSection(result *schema.AnalysisResult, writer io.Writer) error {
	if len(result.Recommendations) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(writer, "\nRecommendations:"); err != nil {
		return err
	}
	for _, rec := range result.Recommendations {
		if _, err := fmt.Fprintf(writer, "  [%s] %s\n", rec.Priority, rec.Message); err != nil {
			return err
		}
		if rec.SuggestedAction != "" {
			if _, err := fmt.Fprintf(writer, "         -> %s\n", rec.SuggestedAction); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummarySection(result *schema.AnalysisResult, writer io.Writer) error {
	sum := result.Summary
	if sum.AIText != "" {
		if _, err := fmt.Fprintf(writer, "\nSummary (%s, confidence %s):\n%s\n", sum.AIProvider, sum.Confidence, sum.AIText); err != nil {
			return err
		}
		return nil
	}
	if sum.RuleBased.Assessment != "" {
		if _, err := fmt.Fprintf(writer, "\nSummary (rule-based, confidence %s): %s\n", sum.Confidence, sum.RuleBased.Assessment); err != nil {
			return err
		}
		for _, f := range sum.RuleBased.Findings {
			if _, err := fmt.Fprintf(writer, "  - %s\n", f); err != nil {
				return err
			}
		}
	}
	return nil
}

// maxNameWidth bounds the member column so narrow terminals keep the numeric
// columns visible.
func maxNameWidth(termWidth int) int {
	w := termWidth - 60
	if w < 12 {
		return 12
	}
	if w > 32 {
		return 32
	}
	return w
}
